package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meninleo/goodreads/internal/entities"
)

func dunePayload() map[string]any {
	return map[string]any{
		"title":         "Dune",
		"sort_by_title": "Dune",
		"authors":       []map[string]any{{"first_name": "Frank", "last_name": "Herbert"}},
		"isbn":          "9780441172719",
		"publisher":     "Ace",
		"pages":         412,
	}
}

func createBook(t *testing.T, env *testEnv, token string, payload map[string]any) uint {
	t.Helper()
	w := env.request(t, "POST", "/api/books", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func TestCreateBookEndpoint(t *testing.T) {
	t.Run("librarian creates book", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)

		w := env.request(t, "POST", "/api/books", token, dunePayload())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "Dune", body["title"])

		editions, _ := body["editions"].([]any)
		require.Len(t, editions, 1)
		edition := editions[0].(map[string]any)
		assert.Equal(t, "9780441172719", edition["isbn"])
		assert.Equal(t, "PB", edition["format"])
		assert.Equal(t, "en", edition["language"])

		authors, _ := body["authors"].([]any)
		require.Len(t, authors, 1)
	})

	t.Run("accepts numeric isbn", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)

		payload := dunePayload()
		payload["isbn"] = 9780441172719
		w := env.request(t, "POST", "/api/books", token, payload)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("any authenticated reader can catalog a book", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, readerToken := env.createUser(t, "reader@example.com")

		w := env.request(t, "POST", "/api/books", readerToken, dunePayload())
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("accepts an isbn-10 with the X check character", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "reader@example.com")

		payload := dunePayload()
		payload["isbn"] = "080442957X"
		w := env.request(t, "POST", "/api/books", token, payload)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("accepts an author with only a last name", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "reader@example.com")

		payload := dunePayload()
		payload["title"] = "The Odyssey"
		payload["sort_by_title"] = "Odyssey, The"
		payload["isbn"] = "9780140268867"
		payload["authors"] = []map[string]any{{"last_name": "Homer"}}
		w := env.request(t, "POST", "/api/books", token, payload)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeBody(t, w)
		authors, _ := body["authors"].([]any)
		require.Len(t, authors, 1)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)

		payload := dunePayload()
		delete(payload, "authors")
		w := env.request(t, "POST", "/api/books", token, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing one or all required fields: title, sort_by_title and authors",
			errorMessage(t, w))
	})

	t.Run("rejects malformed isbn", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)

		payload := dunePayload()
		payload["isbn"] = "12345"
		w := env.request(t, "POST", "/api/books", token, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects series name without number", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)

		payload := dunePayload()
		payload["series_name"] = "Dune Chronicles"
		w := env.request(t, "POST", "/api/books", token, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects duplicate isbn", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)

		createBook(t, env, token, dunePayload())
		w := env.request(t, "POST", "/api/books", token, dunePayload())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "An edition with this ISBN already exists.", errorMessage(t, w))
	})
}

func TestUpdateBookEndpoint(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, librarianToken := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)
	_, readerToken := env.createUser(t, "reader@example.com")

	bookID := createBook(t, env, librarianToken, dunePayload())
	path := fmt.Sprintf("/api/books/%d", bookID)

	w := env.request(t, "PATCH", path, librarianToken, map[string]any{"orig_title": "Dune (1965)"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Dune (1965)", body["orig_title"])

	w = env.request(t, "PATCH", path, readerToken, map[string]any{"title": "Defaced"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The cataloguing user is never reassignable, even by librarians.
	w = env.request(t, "PATCH", path, librarianToken, map[string]any{"user_id": 42})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, "PATCH", "/api/books/99999", librarianToken, map[string]any{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCombineAndMergeBooks(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, token := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)
	_, readerToken := env.createUser(t, "reader@example.com")

	bookID := createBook(t, env, token, dunePayload())

	w := env.request(t, "PUT", fmt.Sprintf("/api/books/%d/combine-books", bookID), token, map[string]any{})
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = env.request(t, "PUT", fmt.Sprintf("/api/books/%d/merge-books", bookID), token, map[string]any{})
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = env.request(t, "PUT", fmt.Sprintf("/api/books/%d/combine-books", bookID), readerToken, map[string]any{})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewsEndpoint(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, librarianToken := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)
	_, readerToken := env.createUser(t, "reader@example.com")

	bookID := createBook(t, env, librarianToken, dunePayload())
	path := fmt.Sprintf("/api/books/%d/reviews", bookID)

	w := env.request(t, "POST", path, readerToken, map[string]any{"review": "A classic.", "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One review per reader and book.
	w = env.request(t, "POST", path, readerToken, map[string]any{"review": "Again.", "rating": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Ratings live on a 1..5 scale.
	w = env.request(t, "POST", path, librarianToken, map[string]any{"review": "Too high.", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.request(t, "POST", path, librarianToken, map[string]any{"review": "Too low.", "rating": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, "GET", path, readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "POST", "/api/books/99999/reviews", readerToken,
		map[string]any{"review": "Ghost.", "rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBooks(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, librarianToken := env.createUser(t, "librarian@example.com", entities.RoleLibrarian)
	_, readerToken := env.createUser(t, "reader@example.com")

	createBook(t, env, librarianToken, dunePayload())
	second := dunePayload()
	second["title"] = "Dune Messiah"
	second["sort_by_title"] = "Dune Messiah"
	second["isbn"] = "9780441172696"
	createBook(t, env, librarianToken, second)

	w := env.request(t, "GET", "/api/books?limit=1", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["total"])
	data, _ := body["data"].([]any)
	assert.Len(t, data, 1)
	assert.Equal(t, true, body["has_more"])
}
