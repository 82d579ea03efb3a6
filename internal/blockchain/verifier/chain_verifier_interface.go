package verifier

import (
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
)

// IChainVerifier 定义了链上验证服务的接口。本核心把它当作黑盒：不实现交易执行，也不实现密码学原语。
type IChainVerifier interface {
	// 将序列化的交易解码为结构化形式。
	//
	// 参数：
	//   序列化的交易本体
	//
	// 返回：
	//   结构化交易
	DecodeTransaction(serializedPayload []byte) (*proof.StructuredTx, error)

	// 校验交易的签名集。返回 false（而非 error）表示签名验证未通过；error 只表示传输层故障。
	//
	// 参数：
	//   结构化交易
	//   签名序列
	//
	// 返回：
	//   签名集是否有效
	VerifySignatures(tx *proof.StructuredTx, signatures []string) (bool, error)

	// 校验账户对规范消息串的签名。
	//
	// 参数：
	//   规范消息串
	//   签名
	//   账户身份
	//
	// 返回：
	//   签名是否有效
	VerifySignature(canonicalMessage string, signature string, accountIdentity string) (bool, error)
}
