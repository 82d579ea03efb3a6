package meeting

import "time"

// MeetingInfo 表示会议提供方返回的会议信息
type MeetingInfo struct {
	MeetingID string    `json:"meetingId"` // 提供方的会议 ID
	Topic     string    `json:"topic"`     // 会议主题
	JoinURL   string    `json:"joinUrl"`   // 加入链接
	StartsAt  time.Time `json:"startsAt"`  // 开始时间
}

// IProvider 定义了第三方会议提供方的接口。本核心把它当作外部协作者，不关心其内部实现。
type IProvider interface {
	// 为账户安排一场会议。
	//
	// 参数：
	//   账户身份
	//   会议主题
	//   开始时间
	//
	// 返回：
	//   会议信息
	ScheduleMeeting(accountIdentity string, topic string, startsAt time.Time) (*MeetingInfo, error)

	// 清除提供方为账户签发的 cookie。退出登录时尽力调用。
	//
	// 参数：
	//   账户身份
	ClearCookie(accountIdentity string) error
}
