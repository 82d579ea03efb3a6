package service

import (
	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/proof"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// AuthServiceInterface 定义了授权判定的统一入口。应用的其余部分只经由它发问：“允许对载荷 P 执行操作 X 吗？”每次判定要么返回授权上下文，要么返回带类别的拒绝。
type AuthServiceInterface interface {
	// 授权一次内容上传：形状校验 → 交易凭证验证。上传按凭证逐次授权而非按会话授权（每次上传都可归因到一笔新交易），因此不签发会话。
	//
	// 参数：
	//   未经校验的上传授权请求
	//
	// 返回：
	//   授权上下文
	//   规范化的上传授权请求
	AuthorizeUpload(raw *reqschema.RawUploadAuthorizationRequest) (*session.AuthorizedContext, *proof.UploadAuthorizationRequest, error)

	// 授权一次会话开启：形状校验 → 挑战应答验证 → 会话签发。
	//
	// 参数：
	//   未经校验的挑战应答
	//
	// 返回：
	//   新会话
	//   会话令牌
	AuthorizeSessionStart(raw *reqschema.RawSessionChallengeResponse) (*session.Session, string, error)

	// 授权一次任务执行：形状校验 → 任务密钥比对。
	//
	// 参数：
	//   任务名
	//   提交的任务密钥
	//
	// 返回：
	//   授权上下文
	AuthorizeJobRun(jobName string, presentedKey string) (*session.AuthorizedContext, error)

	// 校验会话令牌并返回对应的会话。
	//
	// 参数：
	//   会话令牌
	//
	// 返回：
	//   会话
	ValidateSession(sessionToken string) (*session.Session, error)

	// 退出登录。委托给会话服务的拆除流程，幂等。
	//
	// 参数：
	//   会话令牌
	SignOut(sessionToken string) error
}
