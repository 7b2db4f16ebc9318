package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meninleo/goodreads/internal/entities"
)

func TestSignup(t *testing.T) {
	t.Run("creates profile with settings and shelves", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		w := env.request(t, "POST", "/api/user-profile", "", map[string]any{
			"email":     "new@example.com",
			"password":  "password123",
			"full_name": "New Reader",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "new@example.com", body["email"])
		assert.NotZero(t, body["email_settings"])
		assert.NotZero(t, body["feed_settings"])
		assert.NotContains(t, w.Body.String(), "password")

		shelves, _ := body["shelves"].([]any)
		assert.Len(t, shelves, 3)

		roles, _ := body["roles"].([]any)
		require.Len(t, roles, 1)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		payload := map[string]any{
			"email":     "dup@example.com",
			"password":  "password123",
			"full_name": "First",
		}
		w := env.request(t, "POST", "/api/user-profile", "", payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.request(t, "POST", "/api/user-profile", "", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "the email provided belongs to another account", errorMessage(t, w))
	})

	t.Run("rejects missing fields and bad email", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		w := env.request(t, "POST", "/api/user-profile", "", map[string]any{
			"email": "incomplete@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.request(t, "POST", "/api/user-profile", "", map[string]any{
			"email":     "not-an-email",
			"password":  "password123",
			"full_name": "Bad Email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.request(t, "POST", "/api/user-profile", "", map[string]any{
			"email":     "short@example.com",
			"password":  "short",
			"full_name": "Short Password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	profile, _ := env.createUser(t, "login@example.com")

	t.Run("returns a working token", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login", "", map[string]any{
			"email":    "login@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "Goodreads", body["token_type"])
		access, _ := body["access"].(string)
		require.NotEmpty(t, access)

		w = env.request(t, "GET", fmt.Sprintf("/api/user-profile/%d", profile.ID), access, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		w := env.request(t, "POST", "/api/auth/login", "", map[string]any{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		deleted, token := env.createUser(t, "deleted@example.com")
		w := env.request(t, "DELETE", fmt.Sprintf("/api/user-profile/%d", deleted.ID), token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = env.request(t, "POST", "/api/auth/login", "", map[string]any{
			"email":    "deleted@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// The previously issued token stops working too.
		w = env.request(t, "GET", fmt.Sprintf("/api/user-profile/%d", deleted.ID), token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRetrieveProfile(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	owner, ownerToken := env.createUser(t, "owner@example.com")
	_, otherToken := env.createUser(t, "other@example.com")
	_, adminToken := env.createUser(t, "admin@example.com", entities.RoleAdmin)
	_, staffToken := env.createUser(t, "staff@example.com", entities.RoleStaff)

	path := fmt.Sprintf("/api/user-profile/%d", owner.ID)

	w := env.request(t, "GET", path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "GET", path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "GET", path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "GET", path, staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "GET", path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, "GET", "/api/user-profile/99999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("applies present fields only", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		owner, token := env.createUser(t, "owner@example.com")
		path := fmt.Sprintf("/api/user-profile/%d", owner.ID)

		w := env.request(t, "PATCH", path, token, map[string]any{
			"city":     "Lisbon",
			"birthday": "1990-04-01",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "Lisbon", body["city"])
		assert.Equal(t, "Test owner@example.com", body["full_name"])
	})

	t.Run("never writes identity fields", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		owner, token := env.createUser(t, "owner@example.com")
		path := fmt.Sprintf("/api/user-profile/%d", owner.ID)

		w := env.request(t, "PUT", path, token, map[string]any{
			"email":     "hijacked@example.com",
			"full_name": "Renamed",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "owner@example.com", body["email"])
		assert.Equal(t, "Renamed", body["full_name"])
	})

	t.Run("rejects malformed birthday", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		owner, token := env.createUser(t, "owner@example.com")
		path := fmt.Sprintf("/api/user-profile/%d", owner.ID)

		w := env.request(t, "PATCH", path, token, map[string]any{"birthday": "April 1st"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("denies non-owner reader", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		owner, _ := env.createUser(t, "owner@example.com")
		_, otherToken := env.createUser(t, "other@example.com")

		w := env.request(t, "PATCH", fmt.Sprintf("/api/user-profile/%d", owner.ID), otherToken,
			map[string]any{"city": "Nowhere"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteProfile(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	victim, _ := env.createUser(t, "victim@example.com")
	_, otherToken := env.createUser(t, "other@example.com")
	_, adminToken := env.createUser(t, "admin@example.com", entities.RoleAdmin)

	path := fmt.Sprintf("/api/user-profile/%d", victim.ID)

	w := env.request(t, "DELETE", path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "DELETE", path, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Soft delete: still retrievable by an admin, gone from listings.
	w = env.request(t, "GET", path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "GET", "/api/user-profile", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	profiles, _ := body["data"].([]any)
	for _, entry := range profiles {
		profile := entry.(map[string]any)
		assert.NotEqual(t, "victim@example.com", profile["email"])
	}
}

func TestProfileSettingsEndpoints(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	owner, ownerToken := env.createUser(t, "owner@example.com")
	_, adminToken := env.createUser(t, "admin@example.com", entities.RoleAdmin)

	emailPath := fmt.Sprintf("/api/user-profile/%d/email-setting", owner.ID)
	feedPath := fmt.Sprintf("/api/user-profile/%d/feed-setting", owner.ID)

	w := env.request(t, "GET", emailPath, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["group_invitation"])

	w = env.request(t, "GET", feedPath, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["add_book"])

	// Settings stay private even from admins.
	w = env.request(t, "GET", emailPath, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.request(t, "GET", feedPath, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
