package service

import (
	"testing"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/meeting"
	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// mockMeetingProvider 模拟第三方会议提供方，记录 cookie 清除的调用
type mockMeetingProvider struct {
	clearCookieErr      error
	clearCookieAccounts []string
}

func (m *mockMeetingProvider) ScheduleMeeting(accountIdentity string, topic string, startsAt time.Time) (*meeting.MeetingInfo, error) {
	return &meeting.MeetingInfo{
		MeetingID: "m1",
		Topic:     topic,
		JoinURL:   "https://meetings.example.com/m1",
		StartsAt:  startsAt,
	}, nil
}

func (m *mockMeetingProvider) ClearCookie(accountIdentity string) error {
	m.clearCookieAccounts = append(m.clearCookieAccounts, accountIdentity)
	return m.clearCookieErr
}

func getSampleSessionService() *SessionService {
	return &SessionService{
		SessionStore: store.NewMemorySessionStore(),
		SessionTTL:   30 * time.Minute,
		TokenHMACKey: []byte("test-hmac-key"),
	}
}

func TestIssueAndValidate(t *testing.T) {
	svc := getSampleSessionService()

	sess, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, "user1", sess.AccountIdentity)
	assert.Equal(t, sess.IssuedAt.Add(30*time.Minute), sess.ExpiresAt)

	validated, err := svc.Validate(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, sess.SessionID, validated.SessionID)
}

func TestIssueProducesDistinctSessionsForDistinctAccounts(t *testing.T) {
	// 同一毫秒内为不同账户签发的会话必须各自独立，令牌只能校验回各自的账户
	svc := getSampleSessionService()

	seenIDs := make(map[string]bool)
	for i := 0; i < 200; i++ {
		sessA, tokenA, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user-a"})
		if isNoError := assert.NoError(t, err); !isNoError {
			t.FailNow()
		}
		sessB, tokenB, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user-b"})
		if isNoError := assert.NoError(t, err); !isNoError {
			t.FailNow()
		}

		if isNotEqual := assert.NotEqual(t, sessA.SessionID, sessB.SessionID); !isNotEqual {
			t.FailNow()
		}
		if isNotSeen := assert.False(t, seenIDs[sessA.SessionID]); !isNotSeen {
			t.FailNow()
		}
		if isNotSeen := assert.False(t, seenIDs[sessB.SessionID]); !isNotSeen {
			t.FailNow()
		}
		seenIDs[sessA.SessionID] = true
		seenIDs[sessB.SessionID] = true

		validatedA, err := svc.Validate(tokenA)
		if isNoError := assert.NoError(t, err); !isNoError {
			t.FailNow()
		}
		assert.Equal(t, "user-a", validatedA.AccountIdentity)

		validatedB, err := svc.Validate(tokenB)
		if isNoError := assert.NoError(t, err); !isNoError {
			t.FailNow()
		}
		assert.Equal(t, "user-b", validatedB.AccountIdentity)
	}
}

func TestIssueRevokesPriorSession(t *testing.T) {
	// 每账户至多一个活动会话。第二次签发后旧令牌应校验为已吊销
	svc := getSampleSessionService()
	identity := &proof.VerifiedIdentity{AccountIdentity: "user1"}

	_, tokenA, err := svc.Issue(identity)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	_, tokenB, err := svc.Issue(identity)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	_, err = svc.Validate(tokenA)
	assert.Equal(t, errorcode.ErrorRevoked, errors.Cause(err))

	_, err = svc.Validate(tokenB)
	assert.NoError(t, err)
}

func TestValidateExpiryBoundary(t *testing.T) {
	svc := getSampleSessionService()

	issuedAt := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.NowFunc = func() time.Time { return issuedAt }

	_, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	// now == expiresAt 时会话仍有效
	svc.NowFunc = func() time.Time { return issuedAt.Add(30 * time.Minute) }
	_, err = svc.Validate(token)
	assert.NoError(t, err)

	// 晚于 expiresAt 一纳秒即过期
	svc.NowFunc = func() time.Time { return issuedAt.Add(30*time.Minute + time.Nanosecond) }
	_, err = svc.Validate(token)
	assert.Equal(t, errorcode.ErrorExpired, errors.Cause(err))
}

func TestValidateTamperedToken(t *testing.T) {
	svc := getSampleSessionService()

	_, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	// 篡改令牌标签应校验为格式错误
	_, err = svc.Validate(token + "00")
	assert.Equal(t, errorcode.ErrorMalformed, errors.Cause(err))

	// 没有标签的令牌同样是格式错误
	_, err = svc.Validate("justanid")
	assert.Equal(t, errorcode.ErrorMalformed, errors.Cause(err))
}

func TestValidateUnknownSessionIsRevoked(t *testing.T) {
	// 已被清除（或从未存在）的会话视作已吊销，不暴露“未找到”
	svc := getSampleSessionService()

	token := svc.signSessionID("nonexistent")
	_, err := svc.Validate(token)
	assert.Equal(t, errorcode.ErrorRevoked, errors.Cause(err))
}

func TestRevoke(t *testing.T) {
	svc := getSampleSessionService()

	_, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	err = svc.Revoke("user1")
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	_, err = svc.Validate(token)
	assert.Equal(t, errorcode.ErrorRevoked, errors.Cause(err))

	// 重复吊销不是错误
	err = svc.Revoke("user1")
	assert.NoError(t, err)
}

func TestSignOut(t *testing.T) {
	provider := &mockMeetingProvider{}
	svc := getSampleSessionService()
	svc.MeetingProvider = provider

	_, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	err = svc.SignOut(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, []string{"user1"}, provider.clearCookieAccounts)

	_, err = svc.Validate(token)
	assert.Equal(t, errorcode.ErrorRevoked, errors.Cause(err))
}

func TestSignOutCookieClearFailureDoesNotBlockRevocation(t *testing.T) {
	// cookie 清除为尽力而为：失败只记录日志，吊销照常进行
	provider := &mockMeetingProvider{clearCookieErr: errors.New("provider unreachable")}
	svc := getSampleSessionService()
	svc.MeetingProvider = provider

	_, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	err = svc.SignOut(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	_, err = svc.Validate(token)
	assert.Equal(t, errorcode.ErrorRevoked, errors.Cause(err))
}

func TestSignOutIsIdempotent(t *testing.T) {
	svc := getSampleSessionService()

	_, token, err := svc.Issue(&proof.VerifiedIdentity{AccountIdentity: "user1"})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	err = svc.SignOut(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	// 第二次退出同样成功
	err = svc.SignOut(token)
	assert.NoError(t, err)

	// 不存在的会话的合法令牌也能安静退出
	err = svc.SignOut(svc.signSessionID("nonexistent"))
	assert.NoError(t, err)
}
