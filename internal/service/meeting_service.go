package service

import (
	"fmt"
	"time"

	"gitee.com/czyczk/chain-auth-gateway/internal/meeting"
)

// MeetingServiceInterface 定义了会话门禁的会议安排服务的接口。
type MeetingServiceInterface interface {
	// 校验会话令牌后经第三方提供方安排会议。
	//
	// 参数：
	//   会话令牌
	//   会议主题
	//   开始时间
	//
	// 返回：
	//   会议信息
	ScheduleMeeting(sessionToken string, topic string, startsAt time.Time) (*meeting.MeetingInfo, error)
}

// MeetingService 在会话校验通过后把会议安排委托给第三方提供方。
type MeetingService struct {
	Provider meeting.IProvider
	AuthSvc  AuthServiceInterface
}

// 校验会话令牌后安排会议。
//
// 参数：
//   会话令牌
//   会议主题
//   开始时间
//
// 返回：
//   会议信息
func (s *MeetingService) ScheduleMeeting(sessionToken string, topic string, startsAt time.Time) (*meeting.MeetingInfo, error) {
	if s.Provider == nil {
		return nil, fmt.Errorf("未配置会议提供方")
	}

	sess, err := s.AuthSvc.ValidateSession(sessionToken)
	if err != nil {
		return nil, err
	}

	return s.Provider.ScheduleMeeting(sess.AccountIdentity, topic, startsAt)
}
