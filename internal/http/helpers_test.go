package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/database"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/books"
	"github.com/meninleo/goodreads/internal/database/groups"
	"github.com/meninleo/goodreads/internal/database/shelves"
	"github.com/meninleo/goodreads/internal/entities"
	"github.com/meninleo/goodreads/internal/tokens"
)

const testTokenTTL = time.Hour

// recordingSender captures outbound emails for assertions.
type recordingSender struct {
	to      [][]string
	subject []string
	body    []string
}

func (r *recordingSender) Send(to []string, subject, htmlBody string) error {
	r.to = append(r.to, to)
	r.subject = append(r.subject, subject)
	r.body = append(r.body, htmlBody)
	return nil
}

type testEnv struct {
	router  *gin.Engine
	db      *database.Database
	tokens  *auth.TokenService
	sender  *recordingSender
	baseURL string
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	profiles := accounts.NewRepository(db.DB)
	tokenService := auth.NewTokenService([]byte("test-secret"), time.Hour)
	sender := &recordingSender{}
	baseURL := "http://localhost:8288"

	router := NewRouter(RouterConfig{
		Database:            db,
		Profiles:            profiles,
		Groups:              groups.NewRepository(db.DB),
		Books:               books.NewRepository(db.DB),
		Shelves:             shelves.NewRepository(db.DB),
		TokenService:        tokenService,
		AuthMiddleware:      auth.NewMiddleware(tokenService, profiles),
		InvitationTokenizer: tokens.NewInvitationTokenizer([]byte("invitation-secret"), testTokenTTL),
		EmailSender:         sender,
		BcryptCost:          4,
		BaseURL:             baseURL,
		Version:             "test",
	})

	env := &testEnv{router: router, db: db, tokens: tokenService, sender: sender, baseURL: baseURL}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

// createUser provisions an active profile with the given extra roles and
// returns it with a valid access token.
func (env *testEnv) createUser(t *testing.T, email string, roleIDs ...uint) (*entities.UserProfile, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123", 4)
	require.NoError(t, err)

	profiles := accounts.NewRepository(env.db.DB)
	profile, err := profiles.CreateProfile(email, hash, "Test "+email)
	require.NoError(t, err)

	for _, roleID := range roleIDs {
		var role entities.Role
		require.NoError(t, env.db.DB.First(&role, roleID).Error)
		require.NoError(t, env.db.DB.Model(profile).Association("Roles").Append(&role))
	}

	token, err := env.tokens.Issue(profile.ID)
	require.NoError(t, err)
	return profile, token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", auth.Scheme+" "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	message, _ := errBody["message"].(string)
	return message
}
