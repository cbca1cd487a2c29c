package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextIdentity is the key used to store the player identity in the Gin context.
	ContextIdentity = "identity"
)

// Authorize validates the bearer access token and stores the player identity in the context.
func Authorize(ts i.Tokenizer, auth i.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		identity, err := auth.Identify(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// FromContext returns the identity stored by Authorize.
func FromContext(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(ContextIdentity)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}
