package service

import (
	"fmt"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/blockchain/verifier"
	"gitee.com/czyczk/chain-auth-gateway/internal/store"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"github.com/pkg/errors"
)

// ProofVerifierService 用于验证已签名交易凭证与会话挑战应答。除每账户的序列号记录外无状态；重放由严格递增的序列号而非一次性 nonce 缓存防御，每账户只占一个整数的内存。
type ProofVerifierService struct {
	ChainVerifier verifier.IChainVerifier
	SessionStore  store.SessionStore
	NowFunc       func() time.Time // 当前时间来源。为 nil 时取 `time.Now`。
}

func (s *ProofVerifierService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}

	return time.Now()
}

// ChallengeMessage 从账户身份与序列号导出规范挑战串。编码为 "<账户身份>:<序列号>"。
func ChallengeMessage(accountIdentity string, sequence uint64) string {
	return fmt.Sprintf("%v:%v", accountIdentity, sequence)
}

// 验证已签名交易凭证。
//
// 参数：
//   交易凭证
//
// 返回：
//   已验证的账户身份
func (s *ProofVerifierService) VerifySignedTransaction(txProof *proof.SignedTransactionProof) (*proof.VerifiedIdentity, error) {
	// 第一步：经链上验证服务解码交易
	tx, err := s.ChainVerifier.DecodeTransaction(txProof.SerializedPayload)
	if err != nil {
		if errors.Cause(err) == errorcode.ErrorVerifierUnavailable {
			return nil, err
		}
		return nil, errorcode.ErrorMalformed
	}

	// 第二步：授权方须与声称的账户身份一致。此项在签名校验之前，身份不符不得掩盖为签名错误。
	if tx.AuthorizingActor != txProof.AccountIdentity {
		return nil, errorcode.ErrorIdentityMismatch
	}

	// 第三步：校验签名集
	isValid, err := s.ChainVerifier.VerifySignatures(tx, txProof.Signatures)
	if err != nil {
		if errors.Cause(err) == errorcode.ErrorVerifierUnavailable {
			return nil, err
		}
		return nil, errorcode.ErrorBadSignature
	}
	if !isValid {
		return nil, errorcode.ErrorBadSignature
	}

	// 第四步：交易携带的过期时间不得已过。now == expiration 时尚未过期。
	if s.now().After(tx.Expiration) {
		return nil, errorcode.ErrorExpired
	}

	return &proof.VerifiedIdentity{AccountIdentity: txProof.AccountIdentity}, nil
}

// 验证会话挑战应答。外部校验调用在账户锁之外进行，锁只围住序列号的检查与更新。
//
// 参数：
//   挑战应答
//
// 返回：
//   已验证的账户身份
func (s *ProofVerifierService) VerifyChallengeResponse(resp *proof.SessionChallengeResponse) (*proof.VerifiedIdentity, error) {
	canonicalMessage := ChallengeMessage(resp.AccountIdentity, resp.Sequence)

	isValid, err := s.ChainVerifier.VerifySignature(canonicalMessage, resp.Signature, resp.AccountIdentity)
	if err != nil {
		if errors.Cause(err) == errorcode.ErrorVerifierUnavailable {
			return nil, err
		}
		return nil, errorcode.ErrorBadSignature
	}
	if !isValid {
		return nil, errorcode.ErrorBadSignature
	}

	// 序列号检查与更新为单个原子单元，并发的同账户应答不会都通过
	accepted, err := s.SessionStore.CheckAndSetSequence(resp.AccountIdentity, resp.Sequence)
	if err != nil {
		return nil, errors.Wrap(err, "无法更新账户序列号")
	}
	if !accepted {
		return nil, errorcode.ErrorReplayedSequence
	}

	return &proof.VerifiedIdentity{AccountIdentity: resp.AccountIdentity}, nil
}
