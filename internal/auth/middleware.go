package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/entities"
)

// ContextKeyProfile holds the authenticated *entities.UserProfile.
const ContextKeyProfile = "auth_profile"

// ProfileLoader loads profiles for authenticated requests.
type ProfileLoader interface {
	GetByID(id uint) (*entities.UserProfile, error)
}

// Middleware authenticates requests carrying a "Goodreads <token>" header.
type Middleware struct {
	tokens   *TokenService
	profiles ProfileLoader
}

func NewMiddleware(tokens *TokenService, profiles ProfileLoader) *Middleware {
	return &Middleware{tokens: tokens, profiles: profiles}
}

// Handler rejects unauthenticated requests with 401 and injects the
// authenticated profile (with roles preloaded) into the context.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := m.authenticate(c)
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "authentication required", "code": http.StatusUnauthorized},
			})
			return
		}

		c.Set(ContextKeyProfile, profile)
		c.Next()
	}
}

func (m *Middleware) authenticate(c *gin.Context) *entities.UserProfile {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], Scheme) {
		return nil
	}

	profileID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return nil
	}

	profile, err := m.profiles.GetByID(profileID)
	if err != nil {
		return nil
	}
	// Soft-deleted identities stop authenticating immediately.
	if !profile.IsActive || !profile.Active {
		return nil
	}
	return profile
}

// CurrentProfile returns the authenticated profile from the context, or nil.
func CurrentProfile(c *gin.Context) *entities.UserProfile {
	value, exists := c.Get(ContextKeyProfile)
	if !exists {
		return nil
	}
	profile, ok := value.(*entities.UserProfile)
	if !ok {
		return nil
	}
	return profile
}
