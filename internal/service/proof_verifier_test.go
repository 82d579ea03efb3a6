package service

import (
	"testing"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// mockChainVerifier 以可注入的函数字段模拟链上验证服务，并记录每个方法的调用次数
type mockChainVerifier struct {
	decodeTransactionFunc  func(serializedPayload []byte) (*proof.StructuredTx, error)
	verifySignaturesFunc   func(tx *proof.StructuredTx, signatures []string) (bool, error)
	verifySignatureFunc    func(canonicalMessage string, signature string, accountIdentity string) (bool, error)
	decodeTransactionCalls int
	verifySignaturesCalls  int
	verifySignatureCalls   int
}

func (m *mockChainVerifier) DecodeTransaction(serializedPayload []byte) (*proof.StructuredTx, error) {
	m.decodeTransactionCalls++
	return m.decodeTransactionFunc(serializedPayload)
}

func (m *mockChainVerifier) VerifySignatures(tx *proof.StructuredTx, signatures []string) (bool, error) {
	m.verifySignaturesCalls++
	return m.verifySignaturesFunc(tx, signatures)
}

func (m *mockChainVerifier) VerifySignature(canonicalMessage string, signature string, accountIdentity string) (bool, error) {
	m.verifySignatureCalls++
	return m.verifySignatureFunc(canonicalMessage, signature, accountIdentity)
}

func getSampleTxProof() *proof.SignedTransactionProof {
	return &proof.SignedTransactionProof{
		AccountIdentity:   "user1",
		Signatures:        []string{"c2ln"},
		SerializedPayload: []byte("payload"),
	}
}

func getAcceptingChainVerifier(authorizingActor string, expiration time.Time) *mockChainVerifier {
	return &mockChainVerifier{
		decodeTransactionFunc: func(serializedPayload []byte) (*proof.StructuredTx, error) {
			return &proof.StructuredTx{
				AuthorizingActor: authorizingActor,
				Operation:        "upload",
				RefBlock:         100,
				Expiration:       expiration,
			}, nil
		},
		verifySignaturesFunc: func(tx *proof.StructuredTx, signatures []string) (bool, error) {
			return true, nil
		},
		verifySignatureFunc: func(canonicalMessage string, signature string, accountIdentity string) (bool, error) {
			return true, nil
		},
	}
}

func TestVerifySignedTransaction(t *testing.T) {
	fixedNow := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	chainVerifier := getAcceptingChainVerifier("user1", fixedNow.Add(time.Hour))

	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
		NowFunc:       func() time.Time { return fixedNow },
	}

	identity, err := svc.VerifySignedTransaction(getSampleTxProof())
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, "user1", identity.AccountIdentity)
}

func TestVerifySignedTransactionIdentityMismatch(t *testing.T) {
	// 授权方与声称身份不符时应在签名校验之前失败
	fixedNow := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	chainVerifier := getAcceptingChainVerifier("user2", fixedNow.Add(time.Hour))

	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
		NowFunc:       func() time.Time { return fixedNow },
	}

	_, err := svc.VerifySignedTransaction(getSampleTxProof())
	assert.Equal(t, errorcode.ErrorIdentityMismatch, errors.Cause(err))
	assert.Equal(t, 0, chainVerifier.verifySignaturesCalls)
}

func TestVerifySignedTransactionBadSignature(t *testing.T) {
	fixedNow := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	chainVerifier := getAcceptingChainVerifier("user1", fixedNow.Add(time.Hour))
	chainVerifier.verifySignaturesFunc = func(tx *proof.StructuredTx, signatures []string) (bool, error) {
		return false, nil
	}

	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
		NowFunc:       func() time.Time { return fixedNow },
	}

	_, err := svc.VerifySignedTransaction(getSampleTxProof())
	assert.Equal(t, errorcode.ErrorBadSignature, errors.Cause(err))
}

func TestVerifySignedTransactionExpiration(t *testing.T) {
	fixedNow := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	// now == expiration 时交易尚未过期
	chainVerifier := getAcceptingChainVerifier("user1", fixedNow)
	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
		NowFunc:       func() time.Time { return fixedNow },
	}

	_, err := svc.VerifySignedTransaction(getSampleTxProof())
	assert.NoError(t, err)

	// now 晚于 expiration 一纳秒即过期
	chainVerifier = getAcceptingChainVerifier("user1", fixedNow.Add(-time.Nanosecond))
	svc.ChainVerifier = chainVerifier

	_, err = svc.VerifySignedTransaction(getSampleTxProof())
	assert.Equal(t, errorcode.ErrorExpired, errors.Cause(err))
}

func TestVerifySignedTransactionUndecodablePayload(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	chainVerifier.decodeTransactionFunc = func(serializedPayload []byte) (*proof.StructuredTx, error) {
		return nil, errors.New("不是合法的交易本体")
	}

	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
	}

	_, err := svc.VerifySignedTransaction(getSampleTxProof())
	assert.Equal(t, errorcode.ErrorMalformed, errors.Cause(err))
}

func TestVerifySignedTransactionVerifierUnavailable(t *testing.T) {
	// 传输层故障应原样上浮，而非被掩盖为凭证错误
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	chainVerifier.decodeTransactionFunc = func(serializedPayload []byte) (*proof.StructuredTx, error) {
		return nil, errors.Wrap(errorcode.ErrorVerifierUnavailable, "无法调用链码函数 'decodeTransaction'")
	}

	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
	}

	_, err := svc.VerifySignedTransaction(getSampleTxProof())
	assert.Equal(t, errorcode.ErrorVerifierUnavailable, errors.Cause(err))
}

func TestVerifyChallengeResponseCanonicalMessage(t *testing.T) {
	// 签名应针对 "<账户身份>:<序列号>" 形式的规范挑战串校验
	capturedMessage := ""
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	chainVerifier.verifySignatureFunc = func(canonicalMessage string, signature string, accountIdentity string) (bool, error) {
		capturedMessage = canonicalMessage
		return true, nil
	}

	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
	}

	identity, err := svc.VerifyChallengeResponse(&proof.SessionChallengeResponse{
		AccountIdentity: "user1",
		Signature:       "c2ln",
		Sequence:        42,
	})
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}
	assert.Equal(t, "user1:42", capturedMessage)
	assert.Equal(t, "user1", identity.AccountIdentity)
}

func TestVerifyChallengeResponseReplayedSequence(t *testing.T) {
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  store.NewMemorySessionStore(),
	}

	resp := &proof.SessionChallengeResponse{
		AccountIdentity: "user1",
		Signature:       "c2ln",
		Sequence:        5,
	}

	// 首次使用序列号 5 应通过
	_, err := svc.VerifyChallengeResponse(resp)
	if isNoError := assert.NoError(t, err); !isNoError {
		t.FailNow()
	}

	// 重放同一序列号应失败
	_, err = svc.VerifyChallengeResponse(resp)
	assert.Equal(t, errorcode.ErrorReplayedSequence, errors.Cause(err))

	// 更大的序列号恢复通过
	resp.Sequence = 6
	_, err = svc.VerifyChallengeResponse(resp)
	assert.NoError(t, err)
}

func TestVerifyChallengeResponseBadSignatureLeavesSequenceUntouched(t *testing.T) {
	// 签名校验失败时不应记录序列号
	chainVerifier := getAcceptingChainVerifier("user1", time.Now().Add(time.Hour))
	chainVerifier.verifySignatureFunc = func(canonicalMessage string, signature string, accountIdentity string) (bool, error) {
		return false, nil
	}

	sessionStore := store.NewMemorySessionStore()
	svc := &ProofVerifierService{
		ChainVerifier: chainVerifier,
		SessionStore:  sessionStore,
	}

	resp := &proof.SessionChallengeResponse{
		AccountIdentity: "user1",
		Signature:       "c2ln",
		Sequence:        5,
	}

	_, err := svc.VerifyChallengeResponse(resp)
	assert.Equal(t, errorcode.ErrorBadSignature, errors.Cause(err))

	// 序列号 5 仍然可用
	chainVerifier.verifySignatureFunc = func(canonicalMessage string, signature string, accountIdentity string) (bool, error) {
		return true, nil
	}
	_, err = svc.VerifyChallengeResponse(resp)
	assert.NoError(t, err)
}
