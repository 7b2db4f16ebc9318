package http

import (
	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/database"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/books"
	"github.com/meninleo/goodreads/internal/database/groups"
	"github.com/meninleo/goodreads/internal/database/shelves"
	"github.com/meninleo/goodreads/internal/emails"
	"github.com/meninleo/goodreads/internal/tokens"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Profiles *accounts.Repository
	Groups   *groups.Repository
	Books    *books.Repository
	Shelves  *shelves.Repository

	// Authentication
	TokenService   *auth.TokenService
	AuthMiddleware *auth.Middleware

	// Group invitations
	InvitationTokenizer *tokens.InvitationTokenizer
	EmailSender         emails.Sender

	// Password hashing cost for signups
	BcryptCost int

	// Absolute URL prefix used in emailed links
	BaseURL string

	// Application info
	Version string
}
