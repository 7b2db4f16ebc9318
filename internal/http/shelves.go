package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/database/shelves"
	"github.com/meninleo/goodreads/internal/entities"
)

// ShelvesController manages a profile's bookshelves and their contents.
type ShelvesController struct {
	shelves *shelves.Repository
}

func NewShelvesController(shelvesRepo *shelves.Repository) *ShelvesController {
	return &ShelvesController{shelves: shelvesRepo}
}

// List returns the authenticated profile's shelves.
// GET /api/shelve
func (sc *ShelvesController) List(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	items, err := sc.shelves.ForOwner(actor.ID)
	if err != nil {
		respondInternalError(c, err, "list shelves")
		return
	}
	c.JSON(http.StatusOK, items)
}

type createShelfRequest struct {
	Name string `json:"name"`
}

// Create adds a custom shelf for the authenticated profile.
// POST /api/shelve
func (sc *ShelvesController) Create(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	var req createShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondBadRequest(c, "Missing required field: name")
		return
	}
	shelf, err := sc.shelves.Create(actor.ID, req.Name)
	if err != nil {
		respondInternalError(c, err, "create shelf")
		return
	}
	respondCreated(c, shelf)
}

// Retrieve returns one shelf with its books; owner only.
// GET /api/shelve/:id
func (sc *ShelvesController) Retrieve(c *gin.Context) {
	shelf, ok := sc.ownedShelf(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shelf)
}

type shelfBookRequest struct {
	BookID uint `json:"book_id"`
}

// AddBook places a book on the shelf; owner only, idempotent.
// POST /api/shelve/:id/books
func (sc *ShelvesController) AddBook(c *gin.Context) {
	shelf, ok := sc.ownedShelf(c)
	if !ok {
		return
	}
	var req shelfBookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		respondBadRequest(c, "Missing required field: book_id")
		return
	}
	if err := sc.shelves.AddBook(shelf.ID, req.BookID); err != nil {
		if errors.Is(err, shelves.ErrBookNotFound) {
			respondBadRequest(c, "Check book.")
			return
		}
		respondInternalError(c, err, "add book to shelf")
		return
	}
	respondWorkflowSuccess(c, "Book added to shelf")
}

// RemoveBook takes a book off the shelf; owner only.
// DELETE /api/shelve/:id/books/:bookID
func (sc *ShelvesController) RemoveBook(c *gin.Context) {
	shelf, ok := sc.ownedShelf(c)
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookID")
	if !ok {
		return
	}
	if err := sc.shelves.RemoveBook(shelf.ID, bookID); err != nil {
		respondInternalError(c, err, "remove book from shelf")
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedShelf loads the :id shelf and verifies the authenticated profile
// owns it, writing the error response otherwise.
func (sc *ShelvesController) ownedShelf(c *gin.Context) (*entities.Shelve, bool) {
	id, idOK := parseIDParam(c, "id")
	if !idOK {
		return nil, false
	}
	actor, actorOK := currentProfile(c)
	if !actorOK {
		return nil, false
	}
	loaded, err := sc.shelves.GetByID(id)
	if err != nil {
		if errors.Is(err, shelves.ErrShelfNotFound) {
			respondNotFound(c, "shelf")
			return nil, false
		}
		respondInternalError(c, err, "load shelf")
		return nil, false
	}
	if loaded.OwnerID != actor.ID {
		respondForbidden(c)
		return nil, false
	}
	return loaded, true
}
