package controller

import (
	"net/http"

	"gitee.com/czyczk/chain-auth-gateway/internal/reqschema"
	"gitee.com/czyczk/chain-auth-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

// An AuthController contains a group name and an `AuthService` instance. It also implements the interface `Controller`.
type AuthController struct {
	GroupName string
	AuthSvc   service.AuthServiceInterface
}

// GetGroupName returns the group name.
func (c *AuthController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements part of the interface `Controller`. It returns the API endpoints and handlers which are defined and managed by AuthController.
func (c *AuthController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{"session", "POST"}:   []gin.HandlerFunc{c.handleStartSession},
		urlMethodPair{"session", "GET"}:    []gin.HandlerFunc{c.handleGetSessionStatus},
		urlMethodPair{"session", "DELETE"}: []gin.HandlerFunc{c.handleSignOut},
	}
}

func (c *AuthController) handleStartSession(ctx *gin.Context) {
	var raw reqschema.RawSessionChallengeResponse
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		pel := ParameterErrorList{"挑战应答须为合法的 JSON。"}
		ctx.AbortWithStatusJSON(http.StatusBadRequest, pel)
		return
	}

	sess, sessionToken, err := c.AuthSvc.AuthorizeSessionStart(&raw)
	if err != nil {
		abortWithAuthError(ctx, err)
		return
	}

	// 会话令牌同时写入 cookie，便于浏览器客户端直接使用
	ctx.SetCookie(sessionCookieName, sessionToken, int(sess.ExpiresAt.Sub(sess.IssuedAt).Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, SessionCreationInfo{
		SessionToken:    sessionToken,
		AccountIdentity: sess.AccountIdentity,
		ExpiresAt:       sess.ExpiresAt,
	})
}

func (c *AuthController) handleGetSessionStatus(ctx *gin.Context) {
	// Validity check
	pel := &ParameterErrorList{}
	sessionToken := pel.AppendIfEmptyOrBlankSpaces(extractSessionToken(ctx), "会话令牌不能为空。")

	// Early return if there's parameter error
	if len(*pel) != 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, *pel)
		return
	}

	sess, err := c.AuthSvc.ValidateSession(sessionToken)
	if err != nil {
		abortWithAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SessionStatusInfo{
		AccountIdentity: sess.AccountIdentity,
		IssuedAt:        sess.IssuedAt,
		ExpiresAt:       sess.ExpiresAt,
	})
}

func (c *AuthController) handleSignOut(ctx *gin.Context) {
	// Validity check
	pel := &ParameterErrorList{}
	sessionToken := pel.AppendIfEmptyOrBlankSpaces(extractSessionToken(ctx), "会话令牌不能为空。")

	// Early return if there's parameter error
	if len(*pel) != 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, *pel)
		return
	}

	if err := c.AuthSvc.SignOut(sessionToken); err != nil {
		abortWithAuthError(ctx, err)
		return
	}

	ctx.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	ctx.Writer.WriteHeader(http.StatusNoContent)
}
