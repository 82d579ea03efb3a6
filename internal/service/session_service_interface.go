package service

import (
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// SessionServiceInterface 定义了会话签发、校验与吊销的服务接口。每账户至多一个活动会话：为已有活动会话的账户签发新会话会使旧会话失效，该不变量在签发点强制执行。
type SessionServiceInterface interface {
	// 为已验证的账户身份签发新会话并生成防篡改的会话令牌。
	//
	// 参数：
	//   已验证的账户身份
	//
	// 返回：
	//   新会话
	//   会话令牌（适于存放在客户端 cookie 中）
	Issue(identity *proof.VerifiedIdentity) (*session.Session, string, error)

	// 校验会话令牌。过期采用惰性检查：now > expiresAt 时返回 `ErrorExpired`（now == expiresAt 时仍有效）；已吊销返回 `ErrorRevoked`。
	//
	// 参数：
	//   会话令牌
	//
	// 返回：
	//   会话
	Validate(sessionToken string) (*session.Session, error)

	// 吊销账户当前的活动会话。幂等：吊销不存在或已吊销的会话不是错误。
	//
	// 参数：
	//   账户身份
	Revoke(accountIdentity string) error

	// 退出登录：尽力清除第三方会议提供方的 cookie（失败只记录日志，不作为整体失败），然后吊销会话。幂等。
	//
	// 参数：
	//   会话令牌
	SignOut(sessionToken string) error
}
