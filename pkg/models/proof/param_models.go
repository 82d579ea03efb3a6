package proof

// SignedTransactionProof 表示调用方提交的已签名交易凭证。构建后不可变，每次验证尝试恰好消费一次。
type SignedTransactionProof struct {
	AccountIdentity   string   `json:"accountIdentity"`   // 声称的账户身份
	Signatures        []string `json:"signatures"`        // 签名序列（不可为空）
	SerializedPayload []byte   `json:"serializedPayload"` // 序列化的交易本体
}

// SessionChallengeResponse 表示调用方提交的会话挑战应答
type SessionChallengeResponse struct {
	AccountIdentity string `json:"accountIdentity"` // 声称的账户身份
	Signature       string `json:"signature"`       // 对规范挑战串的签名
	Sequence        uint64 `json:"sequence"`        // 每账户严格递增的序列号（重放防御）
}

// UploadAuthorizationRequest 表示要向去中心化存储写入内容的授权请求
type UploadAuthorizationRequest struct {
	SyncUpload       bool                    `json:"syncUpload"`       // 是否阻塞等待存储网络确认
	TransactionProof *SignedTransactionProof `json:"transactionProof"` // 授权该次上传的交易凭证
}

// JobCredential 表示内部任务的执行凭证。与配置中的任务密钥比对，不产生会话。
type JobCredential struct {
	JobName      string `json:"jobName"`      // 任务名
	PresentedKey string `json:"presentedKey"` // 提交的任务密钥
}
