package proof

import "time"

// StructuredTx 表示从链码得到的交易解码结果
type StructuredTx struct {
	AuthorizingActor string    `json:"authorizingActor"` // 交易的授权方账户
	Operation        string    `json:"operation"`        // 交易中携带的操作名
	RefBlock         uint64    `json:"refBlock"`         // 交易引用的区块号
	Expiration       time.Time `json:"expiration"`       // 交易携带的过期时间
}

// VerifiedIdentity 表示一次验证成功后确认的账户身份
type VerifiedIdentity struct {
	AccountIdentity string `json:"accountIdentity"` // 已验证的账户身份
}
