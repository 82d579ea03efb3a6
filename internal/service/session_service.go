package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/meeting"
	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	"gitee.com/czyczk/chain-auth-gateway/internal/utils/idutils"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SessionService 管理短时会话。唯一持有可变状态的组件，状态全部委托给注入的 `SessionStore`。
type SessionService struct {
	SessionStore    store.SessionStore
	MeetingProvider meeting.IProvider // 退出登录时用于清除第三方 cookie，可为 nil
	SessionTTL      time.Duration
	TokenHMACKey    []byte           // 令牌防篡改所用的 HMAC-SHA256 密钥
	NowFunc         func() time.Time // 当前时间来源。为 nil 时取 `time.Now`。
}

func (s *SessionService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}

	return time.Now()
}

// 令牌形如 "<会话 ID>.<HMAC-SHA256 标签的十六进制>"。存储只以会话 ID 为键，标签使令牌可验篡改。
func (s *SessionService) signSessionID(sessionID string) string {
	mac := hmac.New(sha256.New, s.TokenHMACKey)
	mac.Write([]byte(sessionID))
	return sessionID + "." + hex.EncodeToString(mac.Sum(nil))
}

func (s *SessionService) parseSessionToken(sessionToken string) (string, error) {
	parts := strings.SplitN(sessionToken, ".", 2)
	if len(parts) != 2 {
		return "", errorcode.ErrorMalformed
	}

	sessionID, tag := parts[0], parts[1]
	tagBytes, err := hex.DecodeString(tag)
	if err != nil {
		return "", errorcode.ErrorMalformed
	}

	mac := hmac.New(sha256.New, s.TokenHMACKey)
	mac.Write([]byte(sessionID))
	if !hmac.Equal(tagBytes, mac.Sum(nil)) {
		return "", errorcode.ErrorMalformed
	}

	return sessionID, nil
}

// 为已验证的账户身份签发新会话。先前的活动会话在存储层的同一原子迁移中被吊销。
//
// 参数：
//   已验证的账户身份
//
// 返回：
//   新会话
//   会话令牌
func (s *SessionService) Issue(identity *proof.VerifiedIdentity) (*session.Session, string, error) {
	sessionID, err := idutils.GenerateSnowflakeId()
	if err != nil {
		return nil, "", err
	}

	issuedAt := s.now()
	sess := &session.Session{
		SessionID:       sessionID,
		AccountIdentity: identity.AccountIdentity,
		IssuedAt:        issuedAt,
		ExpiresAt:       issuedAt.Add(s.SessionTTL),
	}

	prior, err := s.SessionStore.PutSession(sess)
	if err != nil {
		return nil, "", errors.Wrap(err, "无法写入新会话")
	}
	if prior != nil {
		log.Debugf("账户 %v 的先前会话 %v 已随新会话的签发被吊销", identity.AccountIdentity, prior.SessionID)
	}

	return sess, s.signSessionID(sessionID), nil
}

// 校验会话令牌。
//
// 参数：
//   会话令牌
//
// 返回：
//   会话
func (s *SessionService) Validate(sessionToken string) (*session.Session, error) {
	sessionID, err := s.parseSessionToken(sessionToken)
	if err != nil {
		return nil, err
	}

	sess, err := s.SessionStore.GetSession(sessionID)
	if err != nil {
		if errors.Cause(err) == errorcode.ErrorNotFound {
			// 已被清除（或从未存在）的会话视作已吊销
			return nil, errorcode.ErrorRevoked
		}
		return nil, errors.Wrap(err, "无法读取会话")
	}

	if s.now().After(sess.ExpiresAt) {
		return nil, errorcode.ErrorExpired
	}
	if sess.Revoked {
		return nil, errorcode.ErrorRevoked
	}

	return sess, nil
}

// 吊销账户当前的活动会话。幂等。
//
// 参数：
//   账户身份
func (s *SessionService) Revoke(accountIdentity string) error {
	return s.SessionStore.RevokeSessionByAccount(accountIdentity)
}

// 退出登录。cookie 清除为尽力而为：失败记入日志但不中断吊销，整体不视作失败。
//
// 参数：
//   会话令牌
func (s *SessionService) SignOut(sessionToken string) error {
	sessionID, err := s.parseSessionToken(sessionToken)
	if err != nil {
		return err
	}

	sess, err := s.SessionStore.GetSession(sessionID)
	if err != nil {
		if errors.Cause(err) == errorcode.ErrorNotFound {
			// 会话已不存在，重复退出不是错误
			return nil
		}
		return errors.Wrap(err, "无法读取会话")
	}

	if s.MeetingProvider != nil {
		if err := s.MeetingProvider.ClearCookie(sess.AccountIdentity); err != nil {
			log.Warnf("无法清除账户 %v 的会议提供方 cookie: %v", sess.AccountIdentity, err)
		}
	}

	return s.Revoke(sess.AccountIdentity)
}
