package service

import (
	"crypto/sha256"
	"encoding/base64"

	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
)

// UploadService 将授权通过的内容写入 IPFS 网络。上传按凭证逐次授权，不依赖会话。
type UploadService struct {
	ServiceInfo *Info
	AuthSvc     AuthServiceInterface
}

// 经授权判定后将内容上传至 IPFS 网络。
//
// 参数：
//   未经校验的上传授权请求
//   内容
//
// 返回：
//   上传结果
func (s *UploadService) CreateUpload(raw *reqschema.RawUploadAuthorizationRequest, contents []byte) (*UploadResult, error) {
	authCtx, req, err := s.AuthSvc.AuthorizeUpload(raw)
	if err != nil {
		return nil, err
	}

	cid, err := uploadBytesToIPFSWithTimer(s.ServiceInfo.IPFSAPI, contents, req.SyncUpload, "无法将内容上传至 IPFS 网络", "上传内容至 IPFS")
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(contents)

	return &UploadResult{
		CID:             cid,
		AccountIdentity: authCtx.AccountIdentity,
		Hash:            base64.StdEncoding.EncodeToString(hash[:]),
		Size:            uint64(len(contents)),
	}, nil
}
