package controller

import (
	"net/http"

	"gitee.com/czyczk/chain-auth-gateway/internal/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// JobRunner 执行一个已通过任务门禁的内部任务，返回结果摘要。
type JobRunner func() (string, error)

// A JobController contains a group name, an `AuthService` instance and the registered job runners. It also implements the interface `Controller`.
type JobController struct {
	GroupName string
	AuthSvc   service.AuthServiceInterface
	Runners   map[string]JobRunner
}

// GetGroupName returns the group name.
func (c *JobController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements part of the interface `Controller`. It returns the API endpoints and handlers which are defined and managed by JobController.
func (c *JobController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{":name", "POST"}: []gin.HandlerFunc{c.handleRunJob},
	}
}

func (c *JobController) handleRunJob(ctx *gin.Context) {
	// Validity check
	pel := &ParameterErrorList{}
	jobName := pel.AppendIfEmptyOrBlankSpaces(ctx.Param("name"), "任务名不能为空。")
	presentedKey := ctx.GetHeader("X-Job-Key")

	// Early return if there's parameter error
	if len(*pel) != 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, *pel)
		return
	}

	authCtx, err := c.AuthSvc.AuthorizeJobRun(jobName, presentedKey)
	if err != nil {
		abortWithAuthError(ctx, err)
		return
	}

	runner, ok := c.Runners[jobName]
	if !ok {
		// 配置了密钥但没有对应执行器的任务视作未知任务
		ctx.Writer.WriteHeader(http.StatusNotFound)
		return
	}

	result, err := runner()
	if err != nil {
		log.Errorf("任务 %v 执行失败: %v", jobName, err)
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, JobRunInfo{
		JobName:   authCtx.JobName,
		GrantedAt: authCtx.GrantedAt,
		Result:    result,
	})
}
