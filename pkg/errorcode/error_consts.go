package errorcode

import "fmt"

const (
	// CodeMalformed 表示所提交的凭证无法被解析。Service 层收到的错误中若含这样的错误信息则表示是凭证格式问题，而非链码运行出错。
	CodeMalformed = "~MALFORMED~"
	// CodeIdentityMismatch 表示交易的授权方与声称的账户身份不符。
	CodeIdentityMismatch = "~IDENTITYMISMATCH~"
	// CodeBadSignature 表示签名验证未通过。
	CodeBadSignature = "~BADSIGNATURE~"
	// CodeExpired 表示交易或会话已过期。
	CodeExpired = "~EXPIRED~"
	// CodeNotFound 表示资源未找到。Service 层收到的错误中若是这样的错误信息则表示是资源未找到，而非链码运行出错。
	CodeNotFound = "~NOTFOUND~"
)

// ErrorMalformed 为使用了 `CodeMalformed` 的 error 实例
var ErrorMalformed = fmt.Errorf(CodeMalformed)

// ErrorIdentityMismatch 为使用了 `CodeIdentityMismatch` 的 error 实例
var ErrorIdentityMismatch = fmt.Errorf(CodeIdentityMismatch)

// ErrorBadSignature 为使用了 `CodeBadSignature` 的 error 实例
var ErrorBadSignature = fmt.Errorf(CodeBadSignature)

// ErrorExpired 为使用了 `CodeExpired` 的 error 实例
var ErrorExpired = fmt.Errorf(CodeExpired)

// ErrorReplayedSequence 表示挑战应答中的序列号未严格递增（重放防御）。
var ErrorReplayedSequence = fmt.Errorf("~REPLAYEDSEQUENCE~")

// ErrorRevoked 表示会话已被吊销（或已被同账户的新会话取代）。
var ErrorRevoked = fmt.Errorf("~REVOKED~")

// ErrorUnknownJob 表示任务名未在配置中登记。
var ErrorUnknownJob = fmt.Errorf("~UNKNOWNJOB~")

// ErrorBadCredential 表示任务密钥与配置不符。
var ErrorBadCredential = fmt.Errorf("~BADCREDENTIAL~")

// ErrorVerifierUnavailable 表示链上验证服务暂时不可达（传输层错误）。调用方可自行退避重试，本核心不重试。
var ErrorVerifierUnavailable = fmt.Errorf("~VERIFIERUNAVAILABLE~")

// ErrorNotFound 为使用了 `CodeNotFound` 的 error 实例
var ErrorNotFound = fmt.Errorf(CodeNotFound)
