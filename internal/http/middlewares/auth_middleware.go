package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/todohub/internal/actorctx"
	"github.com/geocoder89/todohub/internal/auth"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth rejects the request with 401 unless it carries a valid bearer
// token. On success the caller is available through CallerFromContext and
// actorctx.CallerFrom on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			abortUnauthorized(c, "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		id, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		caller := actorctx.Caller{ID: id, Email: claims.Email}
		c.Set(CtxCaller, caller)
		c.Request = c.Request.WithContext(actorctx.WithCaller(c.Request.Context(), caller))

		c.Next()
	}
}

func CallerFromContext(c *gin.Context) (actorctx.Caller, bool) {
	v, ok := c.Get(CtxCaller)
	if !ok {
		return actorctx.Caller{}, false
	}
	caller, ok := v.(actorctx.Caller)
	return caller, ok && caller.ID != 0
}

func abortUnauthorized(c *gin.Context, msg string) {
	reqID, _ := c.Get(CtxRequestID)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":      "unauthorized",
			"message":   msg,
			"requestId": reqID,
		},
	})
}
