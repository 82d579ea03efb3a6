package background

import (
	"testing"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSweeperEvictsExpiredSessions(t *testing.T) {
	sessionStore := store.NewMemorySessionStore()

	now := time.Now()
	_, err := sessionStore.PutSession(&session.Session{
		SessionID:       "expired",
		AccountIdentity: "user1",
		IssuedAt:        now.Add(-time.Hour),
		ExpiresAt:       now.Add(-30 * time.Minute),
	})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	sweeper := NewSessionSweeper(sessionStore, 10*time.Millisecond)
	err = sweeper.Start()
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	// 等待至少一个清扫周期
	time.Sleep(100 * time.Millisecond)

	wg, err := sweeper.Stop()
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	wg.Wait()

	_, err = sessionStore.GetSession("expired")
	assert.Equal(t, errorcode.ErrorNotFound, errors.Cause(err))
}

func TestSweeperCannotBeStartedTwice(t *testing.T) {
	sweeper := NewSessionSweeper(store.NewMemorySessionStore(), time.Minute)

	err := sweeper.Start()
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Error(t, sweeper.Start())

	wg, err := sweeper.Stop()
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	wg.Wait()

	// 已停止后再停止是错误
	_, err = sweeper.Stop()
	assert.Error(t, err)
}
