package controller

import "time"

// SessionCreationInfo 包含会话成功签发时应该返回给客户端的信息
type SessionCreationInfo struct {
	SessionToken    string    `json:"sessionToken"`    // 会话令牌
	AccountIdentity string    `json:"accountIdentity"` // 账户身份
	ExpiresAt       time.Time `json:"expiresAt"`       // 过期时间
}

// SessionStatusInfo 包含会话校验通过时应该返回给客户端的信息
type SessionStatusInfo struct {
	AccountIdentity string    `json:"accountIdentity"` // 账户身份
	IssuedAt        time.Time `json:"issuedAt"`        // 签发时间
	ExpiresAt       time.Time `json:"expiresAt"`       // 过期时间
}

// JobRunInfo 包含任务成功执行时应该返回给客户端的信息
type JobRunInfo struct {
	JobName   string    `json:"jobName"`   // 任务名
	GrantedAt time.Time `json:"grantedAt"` // 授权时间
	Result    string    `json:"result"`    // 任务执行结果摘要
}
