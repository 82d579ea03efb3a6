package store

import (
	"time"

	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// SessionStore 定义了会话槽与每账户序列号的存储接口。实现必须保证同账户的状态迁移（会话签发/吊销、序列号检查与更新）各自为原子操作；不同账户的请求互不阻塞。
type SessionStore interface {
	// 原子地把账户的活动会话槽替换为 `sess`，并吊销先前的活动会话（若有）。
	//
	// 参数：
	//   新会话
	//
	// 返回：
	//   被取代的会话（没有时为 nil）
	PutSession(sess *session.Session) (*session.Session, error)

	// 按会话 ID 读取会话。未找到时返回 `errorcode.ErrorNotFound`。
	//
	// 参数：
	//   会话 ID
	//
	// 返回：
	//   会话
	GetSession(sessionID string) (*session.Session, error)

	// 吊销账户当前的活动会话。会话不存在或已被吊销不视作错误（幂等）。
	//
	// 参数：
	//   账户身份
	RevokeSessionByAccount(accountIdentity string) error

	// 原子地执行序列号的检查与更新：`seq` 严格大于账户上次接受的序列号时记录 `seq` 并返回 true，否则返回 false 且不改动状态。该账户此前没有记录时任意序列号都被接受。
	//
	// 参数：
	//   账户身份
	//   序列号
	//
	// 返回：
	//   序列号是否被接受
	CheckAndSetSequence(accountIdentity string, seq uint64) (bool, error)

	// 清除过期的会话记录以约束内存占用。
	//
	// 参数：
	//   当前时间
	//
	// 返回：
	//   清除的会话数
	EvictExpired(now time.Time) (int, error)
}
