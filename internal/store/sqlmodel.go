package store

import (
	"time"

	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// SessionDB 是 `session.Session` 在 sessions 表中的存储形式
type SessionDB struct {
	ID              string    `gorm:"column:id;primaryKey"`
	AccountIdentity string    `gorm:"column:account_identity;index"`
	IssuedAt        time.Time `gorm:"column:issued_at"`
	ExpiresAt       time.Time `gorm:"column:expires_at;index"`
	Revoked         bool      `gorm:"column:revoked"`
}

// TableName 指定 `SessionDB` 的表名
func (SessionDB) TableName() string {
	return "sessions"
}

// AccountSequenceDB 记录账户上次接受的序列号，于 account_sequences 表中
type AccountSequenceDB struct {
	AccountIdentity string `gorm:"column:account_identity;primaryKey"`
	LastSequence    uint64 `gorm:"column:last_sequence"`
}

// TableName 指定 `AccountSequenceDB` 的表名
func (AccountSequenceDB) TableName() string {
	return "account_sequences"
}

// NewSessionDBFromModel 从 `session.Session` 对象生成 `SessionDB` 对象。
func NewSessionDBFromModel(sess *session.Session) *SessionDB {
	return &SessionDB{
		ID:              sess.SessionID,
		AccountIdentity: sess.AccountIdentity,
		IssuedAt:        sess.IssuedAt,
		ExpiresAt:       sess.ExpiresAt,
		Revoked:         sess.Revoked,
	}
}

// ToModel 从 `SessionDB` 对象还原 `session.Session` 对象。
func (s *SessionDB) ToModel() *session.Session {
	return &session.Session{
		SessionID:       s.ID,
		AccountIdentity: s.AccountIdentity,
		IssuedAt:        s.IssuedAt,
		ExpiresAt:       s.ExpiresAt,
		Revoked:         s.Revoked,
	}
}
