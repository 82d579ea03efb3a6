package reqschema

import (
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
)

// RawSignedTransactionProof 表示未经校验的已签名交易凭证。`serializedPayload` 以小整数序列（0–255）表示。
type RawSignedTransactionProof struct {
	AccountIdentity   string   `json:"accountIdentity"`
	Signatures        []string `json:"signatures"`
	SerializedPayload []int    `json:"serializedPayload"`
}

// RawSessionChallengeResponse 表示未经校验的会话挑战应答
type RawSessionChallengeResponse struct {
	AccountIdentity string `json:"accountIdentity"`
	Signature       string `json:"signature"`
	Sequence        int64  `json:"sequence"`
}

// RawUploadAuthorizationRequest 表示未经校验的上传授权请求
type RawUploadAuthorizationRequest struct {
	SyncUpload       bool                       `json:"syncUpload"`
	TransactionProof *RawSignedTransactionProof `json:"transactionProof"`
}

// ValidateSignedTransactionProof 校验已签名交易凭证的形状并将其规范化。一趟收集全部违规字段，不因首个违规提前返回。
//
// 参数：
//   未经校验的交易凭证
//
// 返回：
//   规范化的交易凭证（有违规时为 nil）
//   违规列表
func ValidateSignedTransactionProof(raw *RawSignedTransactionProof) (*proof.SignedTransactionProof, ValidationErrorList) {
	vel := &ValidationErrorList{}

	if raw == nil {
		*vel = append(*vel, ValidationError{Field: "transactionProof", Reason: "交易凭证不能为空。"})
		return nil, *vel
	}

	return validateSignedTransactionProofFields(raw, "", vel)
}

func validateSignedTransactionProofFields(raw *RawSignedTransactionProof, fieldPrefix string, vel *ValidationErrorList) (*proof.SignedTransactionProof, ValidationErrorList) {
	accountIdentity := vel.AppendIfEmptyOrBlankSpaces(raw.AccountIdentity, fieldPrefix+"accountIdentity", "账户身份不能为空。")

	if len(raw.Signatures) == 0 {
		*vel = append(*vel, ValidationError{Field: fieldPrefix + "signatures", Reason: "签名序列不能为空。"})
	}
	for _, signature := range raw.Signatures {
		if signature == "" {
			*vel = append(*vel, ValidationError{Field: fieldPrefix + "signatures", Reason: "签名不能为空字符串。"})
			break
		}
	}

	serializedPayload := vel.AppendIfNotByteSequence(raw.SerializedPayload, fieldPrefix+"serializedPayload", "交易本体须为非空的 0–255 整数序列。")

	if len(*vel) > 0 {
		return nil, *vel
	}

	return &proof.SignedTransactionProof{
		AccountIdentity:   accountIdentity,
		Signatures:        raw.Signatures,
		SerializedPayload: serializedPayload,
	}, nil
}

// ValidateSessionChallengeResponse 校验会话挑战应答的形状并将其规范化。
//
// 参数：
//   未经校验的挑战应答
//
// 返回：
//   规范化的挑战应答（有违规时为 nil）
//   违规列表
func ValidateSessionChallengeResponse(raw *RawSessionChallengeResponse) (*proof.SessionChallengeResponse, ValidationErrorList) {
	vel := &ValidationErrorList{}

	if raw == nil {
		*vel = append(*vel, ValidationError{Field: "challengeResponse", Reason: "挑战应答不能为空。"})
		return nil, *vel
	}

	accountIdentity := vel.AppendIfEmptyOrBlankSpaces(raw.AccountIdentity, "accountIdentity", "账户身份不能为空。")
	signature := vel.AppendIfEmptyString(raw.Signature, "signature", "签名不能为空。")
	sequence := vel.AppendIfNegative(raw.Sequence, "sequence", "序列号须为非负整数。")

	if len(*vel) > 0 {
		return nil, *vel
	}

	return &proof.SessionChallengeResponse{
		AccountIdentity: accountIdentity,
		Signature:       signature,
		Sequence:        sequence,
	}, nil
}

// ValidateUploadAuthorizationRequest 校验上传授权请求的形状并将其规范化。内嵌交易凭证的违规以 "transactionProof." 前缀标出字段。
//
// 参数：
//   未经校验的上传授权请求
//
// 返回：
//   规范化的上传授权请求（有违规时为 nil）
//   违规列表
func ValidateUploadAuthorizationRequest(raw *RawUploadAuthorizationRequest) (*proof.UploadAuthorizationRequest, ValidationErrorList) {
	vel := &ValidationErrorList{}

	if raw == nil {
		*vel = append(*vel, ValidationError{Field: "uploadAuthorizationRequest", Reason: "上传授权请求不能为空。"})
		return nil, *vel
	}

	if raw.TransactionProof == nil {
		*vel = append(*vel, ValidationError{Field: "transactionProof", Reason: "交易凭证不能为空。"})
		return nil, *vel
	}

	transactionProof, _ := validateSignedTransactionProofFields(raw.TransactionProof, "transactionProof.", vel)
	if len(*vel) > 0 {
		return nil, *vel
	}

	return &proof.UploadAuthorizationRequest{
		SyncUpload:       raw.SyncUpload,
		TransactionProof: transactionProof,
	}, nil
}

// ValidateJobCredential 校验任务凭证的形状。
//
// 参数：
//   任务名
//   提交的任务密钥
//
// 返回：
//   规范化的任务凭证（有违规时为 nil）
//   违规列表
func ValidateJobCredential(jobName string, presentedKey string) (*proof.JobCredential, ValidationErrorList) {
	vel := &ValidationErrorList{}

	jobName = vel.AppendIfEmptyOrBlankSpaces(jobName, "jobName", "任务名不能为空。")
	presentedKey = vel.AppendIfEmptyString(presentedKey, "presentedKey", "任务密钥不能为空。")

	if len(*vel) > 0 {
		return nil, *vel
	}

	return &proof.JobCredential{
		JobName:      jobName,
		PresentedKey: presentedKey,
	}, nil
}
