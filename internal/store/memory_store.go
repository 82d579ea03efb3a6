package store

import (
	"sync"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// accountSlot 持有单个账户的可变状态。`mu` 只围住内存状态迁移，外部验证调用不在其保护范围内进行。
type accountSlot struct {
	mu           sync.Mutex
	current      *session.Session // 账户当前的活动会话
	lastSequence uint64           // 上次接受的序列号
	hasSequence  bool             // 该账户是否已有序列号记录
}

// MemorySessionStore 是 `SessionStore` 的内存实现，也是默认实现。每账户一个槽，槽内迁移原子，不同账户互不阻塞。
type MemorySessionStore struct {
	mu    sync.RWMutex
	slots map[string]*accountSlot
	byID  map[string]*session.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		slots: make(map[string]*accountSlot),
		byID:  make(map[string]*session.Session),
	}
}

func (s *MemorySessionStore) getOrCreateSlot(accountIdentity string) *accountSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[accountIdentity]
	if !ok {
		slot = &accountSlot{}
		s.slots[accountIdentity] = slot
	}

	return slot
}

// 原子地替换账户的活动会话槽。先前的活动会话被标记为已吊销但仍可按 ID 查到，使旧令牌的校验得到“已吊销”而非“未找到”。
func (s *MemorySessionStore) PutSession(sess *session.Session) (*session.Session, error) {
	slot := s.getOrCreateSlot(sess.AccountIdentity)

	slot.mu.Lock()
	prior := slot.current
	if prior != nil {
		prior.Revoked = true
	}
	slot.current = sess
	slot.mu.Unlock()

	s.mu.Lock()
	s.byID[sess.SessionID] = sess
	s.mu.Unlock()

	return prior, nil
}

func (s *MemorySessionStore) GetSession(sessionID string) (*session.Session, error) {
	s.mu.RLock()
	sess, ok := s.byID[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, errorcode.ErrorNotFound
	}

	// 在槽锁下取快照，避免与并发的吊销操作竞争
	slot := s.getOrCreateSlot(sess.AccountIdentity)
	slot.mu.Lock()
	snapshot := *sess
	slot.mu.Unlock()

	return &snapshot, nil
}

func (s *MemorySessionStore) RevokeSessionByAccount(accountIdentity string) error {
	s.mu.RLock()
	slot, ok := s.slots[accountIdentity]
	s.mu.RUnlock()
	if !ok {
		// 吊销不存在的会话不是错误
		return nil
	}

	slot.mu.Lock()
	if slot.current != nil {
		slot.current.Revoked = true
	}
	slot.mu.Unlock()

	return nil
}

func (s *MemorySessionStore) CheckAndSetSequence(accountIdentity string, seq uint64) (bool, error) {
	slot := s.getOrCreateSlot(accountIdentity)

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.hasSequence && seq <= slot.lastSequence {
		return false, nil
	}

	slot.lastSequence = seq
	slot.hasSequence = true
	return true, nil
}

func (s *MemorySessionStore) EvictExpired(now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.byID {
		slot, ok := s.slots[sess.AccountIdentity]
		if !ok {
			delete(s.byID, id)
			evicted++
			continue
		}

		slot.mu.Lock()
		if now.After(sess.ExpiresAt) {
			if slot.current == sess {
				slot.current = nil
			}
			delete(s.byID, id)
			evicted++
		}
		slot.mu.Unlock()
	}

	return evicted, nil
}
