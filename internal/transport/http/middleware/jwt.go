package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"twitterclone/internal/pkg/jwtutil"
	"twitterclone/internal/transport/http/response"
)

const ContextUsernameKey = "username"

// AuthJWT gates protected routes behind a bearer token. Every failure
// mode (missing header, wrong scheme, bad signature, garbage token)
// produces the same 401 body so clients cannot tell them apart.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(secret, c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, response.MsgInvalidJWT)
			c.Abort()
			return
		}

		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

func authenticate(secret, authHeader string) (*jwtutil.Claims, bool) {
	header := strings.TrimSpace(authHeader)
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return nil, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	claims, err := jwtutil.ParseToken(secret, token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CallerUsername pulls the authenticated username set by AuthJWT. The
// second return is false when the route was not behind the middleware.
func CallerUsername(c *gin.Context) (string, bool) {
	usernameAny, exists := c.Get(ContextUsernameKey)
	if !exists {
		return "", false
	}
	username, ok := usernameAny.(string)
	return username, ok && username != ""
}
