package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meninleo/goodreads/internal/entities"
)

type stubLoader struct {
	profiles map[uint]*entities.UserProfile
}

func (s *stubLoader) GetByID(id uint) (*entities.UserProfile, error) {
	if profile, ok := s.profiles[id]; ok {
		return profile, nil
	}
	return nil, ErrInvalidToken
}

func setupMiddlewareRouter(t *testing.T) (*gin.Engine, *TokenService, *stubLoader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	loader := &stubLoader{profiles: map[uint]*entities.UserProfile{
		1: {ID: 1, Active: true, IsActive: true},
		2: {ID: 2, Active: false, IsActive: false},
	}}

	router := gin.New()
	router.Use(NewMiddleware(tokens, loader).Handler())
	router.GET("/protected", func(c *gin.Context) {
		profile := CurrentProfile(c)
		require.NotNil(t, profile)
		c.JSON(http.StatusOK, gin.H{"id": profile.ID})
	})
	return router, tokens, loader
}

func request(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	router, tokens, _ := setupMiddlewareRouter(t)

	token, err := tokens.Issue(1)
	require.NoError(t, err)

	t.Run("accepts the configured scheme", func(t *testing.T) {
		w := request(router, Scheme+" "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		w := request(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects bearer scheme", func(t *testing.T) {
		w := request(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		w := request(router, Scheme+" "+token+"x")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects deactivated profile", func(t *testing.T) {
		deactivated, err := tokens.Issue(2)
		require.NoError(t, err)

		w := request(router, Scheme+" "+deactivated)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects token for a missing profile", func(t *testing.T) {
		missing, err := tokens.Issue(99)
		require.NoError(t, err)

		w := request(router, Scheme+" "+missing)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
