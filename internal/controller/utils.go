package controller

import (
	"net/http"
	"strings"

	"gitee.com/czyczk/chain-auth-gateway/internal/service"
	"gitee.com/czyczk/chain-auth-gateway/pkg/errorcode"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const sessionCookieName = "cag_session"

// CORSMiddleware allows cross-origin requests on all the endpoints.
func CORSMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		ctx.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Authorization, X-Job-Key")
		ctx.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}

// extractSessionToken reads the session token from the "Authorization: Bearer" header, falling back to the session cookie.
func extractSessionToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	token, err := ctx.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}

	return token
}

// abortWithAuthError maps a rejection from the authorization core to a client-facing status. Rejection replies never echo
// signature material or raw payload bytes.
func abortWithAuthError(ctx *gin.Context, err error) {
	cause := errors.Cause(err)

	if malformed, ok := cause.(*service.ErrorMalformedRequest); ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, malformed.Violations)
		return
	}

	switch cause {
	case errorcode.ErrorMalformed:
		ctx.Writer.WriteHeader(http.StatusBadRequest)
	case errorcode.ErrorIdentityMismatch, errorcode.ErrorBadSignature, errorcode.ErrorExpired,
		errorcode.ErrorReplayedSequence, errorcode.ErrorRevoked:
		ctx.Writer.WriteHeader(http.StatusUnauthorized)
	case errorcode.ErrorBadCredential:
		ctx.Writer.WriteHeader(http.StatusForbidden)
	case errorcode.ErrorUnknownJob, errorcode.ErrorNotFound:
		ctx.Writer.WriteHeader(http.StatusNotFound)
	case errorcode.ErrorVerifierUnavailable:
		ctx.Writer.WriteHeader(http.StatusServiceUnavailable)
	default:
		ctx.String(http.StatusInternalServerError, err.Error())
	}
}
