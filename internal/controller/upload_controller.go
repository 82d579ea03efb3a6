package controller

import (
	"net/http"

	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
	"gitee.com/czyczk/chain-auth-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

// An UploadController contains a group name and an `UploadService` instance. It also implements the interface `Controller`.
type UploadController struct {
	GroupName string
	UploadSvc service.UploadServiceInterface
}

// GetGroupName returns the group name.
func (c *UploadController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements part of the interface `Controller`. It returns the API endpoints and handlers which are defined and managed by UploadController.
func (c *UploadController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{"upload", "POST"}: []gin.HandlerFunc{c.handleCreateUpload},
	}
}

// uploadRequestBody 是上传端点的请求体：上传授权请求加上 Base64 编码的内容本体。
type uploadRequestBody struct {
	reqschema.RawUploadAuthorizationRequest
	Contents string `json:"contents"`
}

func (c *UploadController) handleCreateUpload(ctx *gin.Context) {
	var body uploadRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		pel := ParameterErrorList{"上传请求须为合法的 JSON。"}
		ctx.AbortWithStatusJSON(http.StatusBadRequest, pel)
		return
	}

	// Validity check
	pel := &ParameterErrorList{}
	contentsStr := pel.AppendIfEmptyOrBlankSpaces(body.Contents, "上传内容不能为空。")
	contents := pel.AppendIfNotBase64(contentsStr, "上传内容须为 Base64 编码。")

	// Early return after extracting common parameters if the error list is not empty
	if len(*pel) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, pel)
		return
	}

	result, err := c.UploadSvc.CreateUpload(&body.RawUploadAuthorizationRequest, contents)
	if err != nil {
		abortWithAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
