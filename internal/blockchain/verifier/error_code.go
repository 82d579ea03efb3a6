package verifier

import (
	"strings"

	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"github.com/pkg/errors"
)

// GetClassifiedError is a general error handler that converts some errors returned from the chaincode to the predefined errors.
// Errors that carry no known suffix code are treated as transport-level failures and wrapped as `ErrorVerifierUnavailable`.
func GetClassifiedError(chaincodeFcn string, err error) error {
	if err == nil {
		return nil
	} else if strings.HasSuffix(err.Error(), errorcode.CodeMalformed) {
		return errorcode.ErrorMalformed
	} else if strings.HasSuffix(err.Error(), errorcode.CodeIdentityMismatch) {
		return errorcode.ErrorIdentityMismatch
	} else if strings.HasSuffix(err.Error(), errorcode.CodeBadSignature) {
		return errorcode.ErrorBadSignature
	} else if strings.HasSuffix(err.Error(), errorcode.CodeExpired) {
		return errorcode.ErrorExpired
	} else if strings.HasSuffix(err.Error(), errorcode.CodeNotFound) {
		return errorcode.ErrorNotFound
	} else {
		return errors.Wrapf(errorcode.ErrorVerifierUnavailable, "无法调用链码函数 '%v': %v", chaincodeFcn, err)
	}
}
