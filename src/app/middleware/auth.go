package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/response"
	"tradefair/src/core/domain"
	"tradefair/src/infra/token"
)

// ActorKey is the context key for the authenticated actor.
const ActorKey = "actor"

// Auth parses an optional Bearer token and stores the resulting actor
// in the context. Requests without a token proceed as a guest; only a
// malformed or expired token is rejected. Endpoints that require a role
// enforce it in the usecase layer.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(ActorKey, domain.Guest())
			c.Next()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			response.Unauthorized(c, "malformed authorization header", GetRequestID(c))
			c.Abort()
			return
		}

		actor, err := issuer.Validate(raw)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token", GetRequestID(c))
			c.Abort()
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid token.
// Must run after Auth.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).Authenticated() {
			response.Unauthorized(c, "authentication required", GetRequestID(c))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor returns the actor stored by Auth, or a guest if absent.
func GetActor(c *gin.Context) domain.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Guest()
}
