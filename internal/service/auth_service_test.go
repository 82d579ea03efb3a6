package service

import (
	"testing"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func getSampleAuthService(chainVerifier *mockChainVerifier) *AuthService {
	sessionStore := store.NewMemorySessionStore()

	return &AuthService{
		ProofVerifier: &ProofVerifierService{
			ChainVerifier: chainVerifier,
			SessionStore:  sessionStore,
		},
		SessionSvc: &SessionService{
			SessionStore: sessionStore,
			SessionTTL:   30 * time.Minute,
			TokenHMACKey: []byte("test-hmac-key"),
		},
		JobGate: &JobGateService{
			JobKeys: map[string]string{"session-gc": "secret-gc"},
		},
	}
}

func getSampleRawUploadRequest() *reqschema.RawUploadAuthorizationRequest {
	return &reqschema.RawUploadAuthorizationRequest{
		SyncUpload: true,
		TransactionProof: &reqschema.RawSignedTransactionProof{
			AccountIdentity:   "user1",
			Signatures:        []string{"c2ln"},
			SerializedPayload: []int{1, 2, 3},
		},
	}
}

func TestAuthorizeUpload(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := getSampleAuthService(chainVerifier)

	ctx, req, err := svc.AuthorizeUpload(getSampleRawUploadRequest())
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, "user1", ctx.AccountIdentity)
	assert.True(t, req.SyncUpload)
	assert.Equal(t, []byte{1, 2, 3}, req.TransactionProof.SerializedPayload)
}

func TestAuthorizeUploadRejectsMalformedBeforeVerification(t *testing.T) {
	// 形状校验不通过时不应触达链上验证服务
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := getSampleAuthService(chainVerifier)

	raw := getSampleRawUploadRequest()
	raw.TransactionProof.AccountIdentity = "  "
	raw.TransactionProof.Signatures = nil

	_, _, err := svc.AuthorizeUpload(raw)
	malformedErr := &ErrorMalformedRequest{}
	if isErrorAs := assert.ErrorAs(t, err, &malformedErr); !isErrorAs {
		t.FailNow()
	}
	assert.Len(t, malformedErr.Violations, 2)
	assert.Equal(t, 0, chainVerifier.decodeTransactionCalls)
}

func TestAuthorizeSessionStart(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := getSampleAuthService(chainVerifier)

	raw := &reqschema.RawSessionChallengeResponse{
		AccountIdentity: "user1",
		Signature:       "c2ln",
		Sequence:        1,
	}

	sess, token, err := svc.AuthorizeSessionStart(raw)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, "user1", sess.AccountIdentity)

	// 签发的令牌应立即可校验
	validated, err := svc.ValidateSession(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, sess.SessionID, validated.SessionID)

	// 重放同一序列号不能再次开启会话
	_, _, err = svc.AuthorizeSessionStart(raw)
	assert.Equal(t, errorcode.ErrorReplayedSequence, errors.Cause(err))
}

func TestAuthorizeSessionStartRejectsMalformedBeforeVerification(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := getSampleAuthService(chainVerifier)

	raw := &reqschema.RawSessionChallengeResponse{
		AccountIdentity: "user1",
		Signature:       "",
		Sequence:        -3,
	}

	_, _, err := svc.AuthorizeSessionStart(raw)
	malformedErr := &ErrorMalformedRequest{}
	if isErrorAs := assert.ErrorAs(t, err, &malformedErr); !isErrorAs {
		t.FailNow()
	}
	assert.Len(t, malformedErr.Violations, 2)
	assert.Equal(t, 0, chainVerifier.verifySignatureCalls)
}

func TestAuthorizeJobRun(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := getSampleAuthService(chainVerifier)

	ctx, err := svc.AuthorizeJobRun("session-gc", "secret-gc")
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, "session-gc", ctx.JobName)

	// 空任务名在门禁之前被拒
	_, err = svc.AuthorizeJobRun("", "secret-gc")
	malformedErr := &ErrorMalformedRequest{}
	assert.ErrorAs(t, err, &malformedErr)

	_, err = svc.AuthorizeJobRun("session-gc", "wrong")
	assert.Equal(t, errorcode.ErrorBadCredential, errors.Cause(err))
}

func TestSignOutIsIdempotentThroughFacade(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := getSampleAuthService(chainVerifier)

	raw := &reqschema.RawSessionChallengeResponse{
		AccountIdentity: "user1",
		Signature:       "c2ln",
		Sequence:        1,
	}

	_, token, err := svc.AuthorizeSessionStart(raw)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	err = svc.SignOut(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	err = svc.SignOut(token)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	_, err = svc.ValidateSession(token)
	assert.Equal(t, errorcode.ErrorRevoked, errors.Cause(err))
}
