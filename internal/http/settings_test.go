package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsID(t *testing.T, env *testEnv, token string, profileID uint, kind string) uint {
	t.Helper()
	w := env.request(t, "GET", fmt.Sprintf("/api/user-profile/%d/%s", profileID, kind), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func TestUpdateEmailSettings(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	owner, ownerToken := env.createUser(t, "owner@example.com")
	_, otherToken := env.createUser(t, "other@example.com")

	id := settingsID(t, env, ownerToken, owner.ID, "email-setting")
	path := fmt.Sprintf("/api/email-setting/%d", id)

	w := env.request(t, "PUT", path, ownerToken, map[string]any{
		"group_news":    false,
		"weekly_digest": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, false, body["group_news"])
	assert.Equal(t, false, body["weekly_digest"])
	// Untouched toggles keep their defaults.
	assert.Equal(t, true, body["group_invitation"])
	assert.Equal(t, true, body["comment_review"])

	w = env.request(t, "PUT", path, otherToken, map[string]any{"group_news": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "PUT", "/api/email-setting/99999", ownerToken, map[string]any{"group_news": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateFeedSetting(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	owner, ownerToken := env.createUser(t, "owner@example.com")
	_, otherToken := env.createUser(t, "other@example.com")

	id := settingsID(t, env, ownerToken, owner.ID, "feed-setting")
	path := fmt.Sprintf("/api/feed-setting/%d", id)

	w := env.request(t, "PUT", path, ownerToken, map[string]any{
		"add_book":      false,
		"follow_author": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, false, body["add_book"])
	assert.Equal(t, false, body["follow_author"])
	assert.Equal(t, true, body["add_quote"])
	assert.Equal(t, true, body["join_group"])

	w = env.request(t, "PUT", path, otherToken, map[string]any{"add_book": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "PUT", "/api/feed-setting/99999", ownerToken, map[string]any{"add_book": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
