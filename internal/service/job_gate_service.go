package service

import (
	"crypto/subtle"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"gitee.com/czyczk/chain-auth-gateway/pkg/models/session"
)

// JobGateServiceInterface 定义了内部任务凭证校验的服务接口。
type JobGateServiceInterface interface {
	// 以配置中的任务密钥校验任务执行凭证。每次调用独立授权：无状态、无过期、重复调用不产生状态变化。
	//
	// 参数：
	//   任务名
	//   提交的任务密钥
	//
	// 返回：
	//   授权上下文
	AuthorizeJob(jobName string, presentedKey string) (*session.AuthorizedContext, error)
}

// JobGateService 以进程启动时装载的任务名 → 密钥映射校验任务凭证。映射在运行期不可变。
type JobGateService struct {
	JobKeys map[string]string
	NowFunc func() time.Time // 当前时间来源。为 nil 时取 `time.Now`。
}

func (s *JobGateService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}

	return time.Now()
}

// 校验任务执行凭证。
//
// 参数：
//   任务名
//   提交的任务密钥
//
// 返回：
//   授权上下文
func (s *JobGateService) AuthorizeJob(jobName string, presentedKey string) (*session.AuthorizedContext, error) {
	expectedKey, ok := s.JobKeys[jobName]
	if !ok {
		return nil, errorcode.ErrorUnknownJob
	}

	// 常数时间比较，避免按字节提前返回泄露密钥前缀
	if subtle.ConstantTimeCompare([]byte(expectedKey), []byte(presentedKey)) != 1 {
		return nil, errorcode.ErrorBadCredential
	}

	return &session.AuthorizedContext{
		JobName:   jobName,
		GrantedAt: s.now(),
	}, nil
}
