package session

import "time"

// Session 表示绑定已验证账户身份的短时会话记录。仅由 SessionManager 持有；创建后只有 `Revoked` 字段会被改写。
type Session struct {
	SessionID       string    `json:"sessionId"`       // 会话 ID（雪花 ID）
	AccountIdentity string    `json:"accountIdentity"` // 已验证的账户身份
	IssuedAt        time.Time `json:"issuedAt"`        // 签发时间
	ExpiresAt       time.Time `json:"expiresAt"`       // 过期时间（含边界：now == expiresAt 时仍有效）
	Revoked         bool      `json:"revoked"`         // 是否已吊销
}

// AuthorizedContext 表示授权判定成功后交给下游处理器的唯一输出。不携带任何密钥材料。
type AuthorizedContext struct {
	AccountIdentity string    `json:"accountIdentity,omitempty"` // 已验证的账户身份（用户类操作）
	JobName         string    `json:"jobName,omitempty"`         // 任务名（任务类操作）
	GrantedAt       time.Time `json:"grantedAt"`                 // 授权时间
}
