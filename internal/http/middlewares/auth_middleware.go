package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifiedClaims(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

const (
	ctxEmailKey = "auth.email"
	ctxRolesKey = "auth.roles"
)

// stripBearer normalizes the Authorization header. Older clients of the
// previous backend sent the raw token without a scheme, so both forms are
// accepted; the optional "Bearer " prefix is always removed before parsing.
func stripBearer(header string) string {
	header = strings.TrimSpace(header)

	if strings.HasPrefix(header, "Bearer ") || strings.HasPrefix(header, "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}

	return header
}

func (m *AuthMiddleware) abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"timestamp": nowStamp(),
		"status":    http.StatusUnauthorized,
		"error":     "Unauthorized",
		"message":   message,
	})
}

// RequireAuth rejects requests without a valid, unexpired token and stashes
// the caller's email and roles on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := stripBearer(c.GetHeader("Authorization"))

		if raw == "" {
			m.abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := m.jwt.VerifiedClaims(raw)

		if err != nil {
			m.abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ctxEmailKey, claims.Subject)
		c.Set(ctxRolesKey, claims.Roles)

		c.Next()
	}
}

// OptionalAuth populates identity when a token is present but lets
// anonymous requests through. A presented-but-invalid token still fails
// closed with 401; silence is the only way to stay anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if strings.TrimSpace(header) == "" {
			c.Next()
			return
		}

		claims, err := m.jwt.VerifiedClaims(stripBearer(header))

		if err != nil {
			m.abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ctxEmailKey, claims.Subject)
		c.Set(ctxRolesKey, claims.Roles)

		c.Next()
	}
}

// Helpers so handlers don't need to know the magic keys.

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)

	if !ok {
		return "", false
	}

	email, ok := v.(string)

	return email, ok && email != ""
}

func RolesFromContext(c *gin.Context) ([]string, bool) {
	v, ok := c.Get(ctxRolesKey)

	if !ok {
		return nil, false
	}

	roles, ok := v.([]string)

	return roles, ok
}
