package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/database/accounts"
)

// Controller issues access tokens in exchange for credentials.
type Controller struct {
	profiles *accounts.Repository
	tokens   *TokenService
}

func NewController(profiles *accounts.Repository, tokens *TokenService) *Controller {
	return &Controller{profiles: profiles, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access    string `json:"access"`
	TokenType string `json:"token_type"`
	ProfileID uint   `json:"profile_id"`
}

// Login authenticates credentials and returns a bearer token.
// POST /api/auth/login
func (ctrl *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"message": "email and password are required", "code": http.StatusBadRequest},
		})
		return
	}

	profile, err := ctrl.profiles.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, accounts.ErrProfileNotFound) {
			ctrl.rejectCredentials(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"message": "internal server error", "code": http.StatusInternalServerError},
		})
		return
	}

	if !profile.IsActive || !profile.Active {
		ctrl.rejectCredentials(c)
		return
	}
	if err := CheckPassword(req.Password, profile.PasswordHash); err != nil {
		ctrl.rejectCredentials(c)
		return
	}

	access, err := ctrl.tokens.Issue(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"message": "internal server error", "code": http.StatusInternalServerError},
		})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Access: access, TokenType: Scheme, ProfileID: profile.ID})
}

func (ctrl *Controller) rejectCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": "invalid credentials", "code": http.StatusUnauthorized},
	})
}

var _ ProfileLoader = (*accounts.Repository)(nil)
