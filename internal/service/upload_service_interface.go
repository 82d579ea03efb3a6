package service

import (
	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
)

// UploadResult 包含一次上传成功后的结果
type UploadResult struct {
	CID             string `json:"cid"`             // IPFS 内容标识符
	AccountIdentity string `json:"accountIdentity"` // 授权该次上传的账户
	Hash            string `json:"hash"`            // 内容的 SHA256 哈希（Base64 编码）
	Size            uint64 `json:"size"`            // 内容大小
}

// UploadServiceInterface 定义了凭证门禁的内容上传服务的接口。
type UploadServiceInterface interface {
	// 经授权判定后将内容上传至 IPFS 网络。`syncUpload` 为 true 时额外固定内容并等待存储网络确认。
	//
	// 参数：
	//   未经校验的上传授权请求
	//   内容
	//
	// 返回：
	//   上传结果
	CreateUpload(raw *reqschema.RawUploadAuthorizationRequest, contents []byte) (*UploadResult, error)
}
