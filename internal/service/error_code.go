package service

import (
	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
)

// ErrorMalformedRequest 表示请求未通过形状校验。携带一趟校验收集到的全部违规字段。
type ErrorMalformedRequest struct {
	Violations reqschema.ValidationErrorList
}

func (e *ErrorMalformedRequest) Error() string {
	return errorcode.CodeMalformed
}
