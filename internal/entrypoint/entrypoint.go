package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/config"
	"github.com/meninleo/goodreads/internal/database"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/books"
	"github.com/meninleo/goodreads/internal/database/groups"
	"github.com/meninleo/goodreads/internal/database/shelves"
	"github.com/meninleo/goodreads/internal/emails"
	http_controllers "github.com/meninleo/goodreads/internal/http"
	"github.com/meninleo/goodreads/internal/tokens"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then drain in-flight requests within
	// the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Goodreads API v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	profiles := accounts.NewRepository(db.DB)
	groupsRepo := groups.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	shelvesRepo := shelves.NewRepository(db.DB)

	authSecret := secretOrGenerate(cfg.Auth.TokenSecret, "AUTH_TOKEN_SECRET")
	tokenService := auth.NewTokenService(authSecret, cfg.Auth.TokenExpiry)
	authMiddleware := auth.NewMiddleware(tokenService, profiles)

	invitationSecret := secretOrGenerate(cfg.Invitations.TokenSecret, "INVITATION_TOKEN_SECRET")
	tokenizer := tokens.NewInvitationTokenizer(invitationSecret, cfg.Invitations.TokenExpiry)

	var sender emails.Sender
	if cfg.SMTP.Host != "" {
		sender = emails.NewSMTPSender(emails.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Printf("WARNING: SMTP_HOST is not set. Invitation emails will be logged instead of delivered.")
		sender = emails.LogSender{}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:            db,
		Profiles:            profiles,
		Groups:              groupsRepo,
		Books:               booksRepo,
		Shelves:             shelvesRepo,
		TokenService:        tokenService,
		AuthMiddleware:      authMiddleware,
		InvitationTokenizer: tokenizer,
		EmailSender:         sender,
		BcryptCost:          cfg.Auth.BcryptCost,
		BaseURL:             cfg.HTTP.BaseURL,
		Version:             version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, nil)
}

// secretOrGenerate decodes a configured hex secret, or generates an
// ephemeral one. Generated secrets do not survive restarts, so issued
// tokens stop verifying; fine for development, set the variable in
// production.
func secretOrGenerate(configured, envName string) []byte {
	if configured != "" {
		if decoded, err := hex.DecodeString(configured); err == nil {
			return decoded
		}
		return []byte(configured)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}
	log.Printf("Generated ephemeral secret (set %s to persist)", envName)
	return secret
}
