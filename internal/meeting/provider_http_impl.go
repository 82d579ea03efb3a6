package meeting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// ProviderHTTPImpl 通过 REST API 访问会议提供方。
type ProviderHTTPImpl struct {
	BaseURL  string
	APIToken string
	client   *http.Client
}

func NewProviderHTTPImpl(baseURL string, apiToken string) *ProviderHTTPImpl {
	return &ProviderHTTPImpl{
		BaseURL:  baseURL,
		APIToken: apiToken,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type scheduleMeetingRequest struct {
	Host     string    `json:"host"`
	Topic    string    `json:"topic"`
	StartsAt time.Time `json:"startsAt"`
}

// 为账户安排一场会议。
//
// 参数：
//   账户身份
//   会议主题
//   开始时间
//
// 返回：
//   会议信息
func (p *ProviderHTTPImpl) ScheduleMeeting(accountIdentity string, topic string, startsAt time.Time) (*MeetingInfo, error) {
	reqBody, err := json.Marshal(scheduleMeetingRequest{
		Host:     accountIdentity,
		Topic:    topic,
		StartsAt: startsAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "无法序列化会议安排请求")
	}

	req, err := http.NewRequest(http.MethodPost, p.BaseURL+"/meetings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "无法创建会议安排请求")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "无法调用会议提供方")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("会议提供方返回状态码 %v", resp.StatusCode)
	}

	var meetingInfo MeetingInfo
	if err := json.NewDecoder(resp.Body).Decode(&meetingInfo); err != nil {
		return nil, errors.Wrap(err, "无法解析会议提供方的响应")
	}

	return &meetingInfo, nil
}

// 清除提供方为账户签发的 cookie。
//
// 参数：
//   账户身份
func (p *ProviderHTTPImpl) ClearCookie(accountIdentity string) error {
	req, err := http.NewRequest(http.MethodDelete, p.BaseURL+"/cookies/"+url.PathEscape(accountIdentity), nil)
	if err != nil {
		return errors.Wrap(err, "无法创建 cookie 清除请求")
	}
	req.Header.Set("Authorization", "Bearer "+p.APIToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "无法调用会议提供方")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("会议提供方返回状态码 %v", resp.StatusCode)
	}

	return nil
}
