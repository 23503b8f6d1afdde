package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// RequireAuth rejects requests without a valid bearer token.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := bearerIdentity(s, c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid bearer token is present and
// lets anonymous requests through.
func (s *Service) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := bearerIdentity(s, c); ok {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func bearerIdentity(s *Service, c *gin.Context) (Identity, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return Identity{}, false
	}
	identity, err := s.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return Identity{}, false
	}
	return identity, true
}

// IdentityFrom returns the caller identity set by the middleware. The zero
// Identity means anonymous.
func IdentityFrom(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(Identity); ok {
			return identity
		}
	}
	return Identity{}
}
