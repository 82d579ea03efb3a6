package service

import (
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
)

// ProofVerifierServiceInterface 定义了凭证验证服务的接口。验证从不单独信任客户端声称的身份：每条路径都把身份与具体的凭证载荷做密码学绑定。
type ProofVerifierServiceInterface interface {
	// 验证已签名交易凭证：解码 → 授权方比对 → 签名集校验 → 过期检查，依此次序。
	//
	// 参数：
	//   交易凭证
	//
	// 返回：
	//   已验证的账户身份
	VerifySignedTransaction(txProof *proof.SignedTransactionProof) (*proof.VerifiedIdentity, error)

	// 验证会话挑战应答。签名针对由账户身份与序列号导出的规范挑战串校验；序列号未严格递增时以 `ErrorReplayedSequence` 失败，只在成功时记录新序列号。
	//
	// 参数：
	//   挑战应答
	//
	// 返回：
	//   已验证的账户身份
	VerifyChallengeResponse(resp *proof.SessionChallengeResponse) (*proof.VerifiedIdentity, error)
}
