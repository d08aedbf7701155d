package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/schedulebob/auth/internal/constants"
	ctxutil "github.com/schedulebob/auth/pkg/context"
	"github.com/schedulebob/auth/pkg/logger"
)

// TokenValidator is the part of the token provider the authenticator needs.
type TokenValidator interface {
	Validate(token string) bool
	Subject(token string) (string, error)
	Role(token string) (string, error)
}

// Authenticator attaches the caller's identity to the request context when a
// valid bearer token is present. It never rejects a request; endpoints that
// need an identity check for it with ctxutil.IdentityFrom.
type Authenticator struct {
	tokens TokenValidator
}

func NewAuthenticator(tokens TokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader(constants.HeaderAuthorization), constants.BearerPrefix)
		if !ok || !a.tokens.Validate(token) {
			c.Next()
			return
		}

		subject, err := a.tokens.Subject(token)
		if err != nil {
			c.Next()
			return
		}
		// refresh tokens carry no role and never stand in for an access token
		role, err := a.tokens.Role(token)
		if err != nil || role == "" {
			c.Next()
			return
		}

		ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{Subject: subject, Role: role})
		c.Request = c.Request.WithContext(ctx)

		logger.DebugWithContext(ctxutil.NewContextWithRequest(ctx, constants.ModuleMiddleware, "Authenticate"), "Request authenticated").
			String("role", role).
			Log()

		c.Next()
	}
}
