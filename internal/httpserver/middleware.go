package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fauve-storefront/internal/identity"
)

const (
	sessionHeader = "X-Session-ID"

	sessionCtxKey = "session"
	userCtxKey    = "user"
)

// sessionMiddleware resolves the caller's session id, issuing a fresh
// one when the client has none yet. The id is echoed on the response so
// the client can keep it.
func sessionMiddleware(sessions *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(sessionHeader, id)
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

// identityMiddleware resolves an optional bearer token through the
// identity provider. Anonymous callers pass through: guest checkout is
// allowed.
func identityMiddleware(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || provider == nil {
			c.Next()
			return
		}
		user, err := provider.UserFromToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "identity provider unavailable"})
			return
		}
		if user != nil {
			c.Set(userCtxKey, user)
		}
		c.Next()
	}
}

// requireAdmin guards the back-office routes.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *identity.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	user, _ := v.(*identity.User)
	return user
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
