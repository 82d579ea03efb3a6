package service

import (
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// AuthService 是授权判定的统一入口，组合形状校验、凭证验证、会话管理与任务门禁。
type AuthService struct {
	ProofVerifier ProofVerifierServiceInterface
	SessionSvc    SessionServiceInterface
	JobGate       JobGateServiceInterface
	NowFunc       func() time.Time // 当前时间来源。为 nil 时取 `time.Now`。
}

func (s *AuthService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}

	return time.Now()
}

// 授权一次内容上传。形状校验不通过时在任何验证调用之前返回 `ErrorMalformedRequest`。
//
// 参数：
//   未经校验的上传授权请求
//
// 返回：
//   授权上下文
//   规范化的上传授权请求
func (s *AuthService) AuthorizeUpload(raw *reqschema.RawUploadAuthorizationRequest) (*session.AuthorizedContext, *proof.UploadAuthorizationRequest, error) {
	req, violations := reqschema.ValidateUploadAuthorizationRequest(raw)
	if len(violations) > 0 {
		return nil, nil, &ErrorMalformedRequest{Violations: violations}
	}

	identity, err := s.ProofVerifier.VerifySignedTransaction(req.TransactionProof)
	if err != nil {
		return nil, nil, err
	}

	return &session.AuthorizedContext{
		AccountIdentity: identity.AccountIdentity,
		GrantedAt:       s.now(),
	}, req, nil
}

// 授权一次会话开启。
//
// 参数：
//   未经校验的挑战应答
//
// 返回：
//   新会话
//   会话令牌
func (s *AuthService) AuthorizeSessionStart(raw *reqschema.RawSessionChallengeResponse) (*session.Session, string, error) {
	resp, violations := reqschema.ValidateSessionChallengeResponse(raw)
	if len(violations) > 0 {
		return nil, "", &ErrorMalformedRequest{Violations: violations}
	}

	identity, err := s.ProofVerifier.VerifyChallengeResponse(resp)
	if err != nil {
		return nil, "", err
	}

	return s.SessionSvc.Issue(identity)
}

// 授权一次任务执行。
//
// 参数：
//   任务名
//   提交的任务密钥
//
// 返回：
//   授权上下文
func (s *AuthService) AuthorizeJobRun(jobName string, presentedKey string) (*session.AuthorizedContext, error) {
	cred, violations := reqschema.ValidateJobCredential(jobName, presentedKey)
	if len(violations) > 0 {
		return nil, &ErrorMalformedRequest{Violations: violations}
	}

	return s.JobGate.AuthorizeJob(cred.JobName, cred.PresentedKey)
}

// 校验会话令牌。
//
// 参数：
//   会话令牌
//
// 返回：
//   会话
func (s *AuthService) ValidateSession(sessionToken string) (*session.Session, error) {
	return s.SessionSvc.Validate(sessionToken)
}

// 退出登录。
//
// 参数：
//   会话令牌
func (s *AuthService) SignOut(sessionToken string) error {
	return s.SessionSvc.SignOut(sessionToken)
}
