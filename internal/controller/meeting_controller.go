package controller

import (
	"net/http"

	"gitee.com/czyczk/chain-auth-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

// A MeetingController contains a group name and a `MeetingService` instance. It also implements the interface `Controller`.
type MeetingController struct {
	GroupName  string
	MeetingSvc service.MeetingServiceInterface
}

// GetGroupName returns the group name.
func (c *MeetingController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements part of the interface `Controller`. It returns the API endpoints and handlers which are defined and managed by MeetingController.
func (c *MeetingController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{"meeting", "POST"}: []gin.HandlerFunc{c.handleScheduleMeeting},
	}
}

func (c *MeetingController) handleScheduleMeeting(ctx *gin.Context) {
	// Validity check
	pel := &ParameterErrorList{}
	sessionToken := pel.AppendIfEmptyOrBlankSpaces(extractSessionToken(ctx), "会话令牌不能为空。")
	topic := pel.AppendIfEmptyOrBlankSpaces(ctx.PostForm("topic"), "会议主题不能为空。")
	startsAtStr := pel.AppendIfEmptyOrBlankSpaces(ctx.PostForm("startsAt"), "开始时间不能为空。")
	startsAt := pel.AppendIfNotRFC3339Time(startsAtStr, "开始时间须为 RFC 3339 时间戳。")

	// Early return after extracting common parameters if the error list is not empty
	if len(*pel) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, pel)
		return
	}

	meetingInfo, err := c.MeetingSvc.ScheduleMeeting(sessionToken, topic, startsAt)
	if err != nil {
		abortWithAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, meetingInfo)
}
