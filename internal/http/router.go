package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Signup, login and health stay public; everything else requires a
// bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := auth.NewController(cfg.Profiles, cfg.TokenService)
	users := NewUserProfilesController(cfg.Profiles, cfg.Groups, cfg.BcryptCost)
	settings := NewSettingsController(cfg.Profiles)
	groupsController := NewReadingGroupsController(cfg.Groups, cfg.Profiles, cfg.InvitationTokenizer, cfg.EmailSender, cfg.BaseURL)
	booksController := NewBooksController(cfg.Books)
	shelvesController := NewShelvesController(cfg.Shelves)
	genres := NewGenresController(cfg.Books, cfg.Profiles)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public API: signup and login
	router.POST("/api/auth/login", authController.Login)
	router.POST("/api/user-profile", users.Create)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.Handler())

	// User profiles and per-profile settings
	api.GET("/user-profile", users.List)
	api.GET("/user-profile/:id", users.Retrieve)
	api.PUT("/user-profile/:id", users.Update)
	api.PATCH("/user-profile/:id", users.Update)
	api.DELETE("/user-profile/:id", users.Delete)
	api.GET("/user-profile/:id/email-setting", users.EmailSetting)
	api.GET("/user-profile/:id/feed-setting", users.FeedSetting)
	api.PUT("/user-profile/:id/user-group-invitation", users.AcceptGroupInvitation)

	// Notification settings addressed by settings row id
	api.PUT("/email-setting/:id", settings.UpdateEmailSettings)
	api.PUT("/feed-setting/:id", settings.UpdateFeedSetting)

	// Reading groups and the invitation workflow
	api.POST("/reading-group", groupsController.Create)
	api.GET("/reading-group", groupsController.List)
	api.GET("/reading-group/:id", groupsController.Retrieve)
	api.PUT("/reading-group/:id", groupsController.Update)
	api.PATCH("/reading-group/:id", groupsController.Update)
	api.DELETE("/reading-group/:id", groupsController.Delete)
	api.POST("/reading-group/:id/group-user-invitation", groupsController.Invite)
	api.PUT("/reading-group/:id/accept-group-invitation/:uidb64/:token", groupsController.AcceptWithToken)

	// Book catalog
	api.POST("/books", booksController.Create)
	api.GET("/books", booksController.List)
	api.GET("/books/:id", booksController.Retrieve)
	api.PUT("/books/:id", booksController.Update)
	api.PATCH("/books/:id", booksController.Update)
	api.PUT("/books/:id/combine-books", booksController.CombineBooks)
	api.PUT("/books/:id/merge-books", booksController.MergeBooks)
	api.POST("/books/:id/reviews", booksController.CreateReview)
	api.GET("/books/:id/reviews", booksController.ListReviews)

	// Shelves
	api.GET("/shelve", shelvesController.List)
	api.POST("/shelve", shelvesController.Create)
	api.GET("/shelve/:id", shelvesController.Retrieve)
	api.POST("/shelve/:id/books", shelvesController.AddBook)
	api.DELETE("/shelve/:id/books/:bookID", shelvesController.RemoveBook)

	// Genres
	api.GET("/genre", genres.List)
	api.POST("/genre", genres.Create)
	api.GET("/user-profile/:id/favorite-genres", genres.ListFavorites)
	api.POST("/user-profile/:id/favorite-genres", genres.AddFavorite)
	api.DELETE("/user-profile/:id/favorite-genres/:genreID", genres.RemoveFavorite)

	return router
}
