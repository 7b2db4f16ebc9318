package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/books"
)

// GenresController lists the genre catalog and manages a profile's
// favorite genres.
type GenresController struct {
	books    *books.Repository
	profiles *accounts.Repository
}

func NewGenresController(booksRepo *books.Repository, profiles *accounts.Repository) *GenresController {
	return &GenresController{books: booksRepo, profiles: profiles}
}

// List returns all genres.
// GET /api/genre
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.books.ListGenres()
	if err != nil {
		respondInternalError(c, err, "list genres")
		return
	}
	c.JSON(http.StatusOK, genres)
}

type createGenreRequest struct {
	Name string `json:"name"`
}

// Create adds a genre to the catalog; librarians only.
// POST /api/genre
func (gc *GenresController) Create(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if !auth.CanEditBooks(actor) {
		respondForbidden(c)
		return
	}
	var req createGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondBadRequest(c, "Missing required field: name")
		return
	}
	genre, err := gc.books.CreateGenre(req.Name)
	if err != nil {
		if errors.Is(err, books.ErrGenreExists) {
			respondBadRequest(c, "Genre already exists.")
			return
		}
		respondInternalError(c, err, "create genre")
		return
	}
	respondCreated(c, genre)
}

// favoritesOwner resolves the profile id from the path and requires the
// authenticated profile to be that owner. Favorites are private.
func favoritesOwner(c *gin.Context) (uint, bool) {
	profileID, ok := parseIDParam(c, "id")
	if !ok {
		return 0, false
	}
	actor, ok := currentProfile(c)
	if !ok {
		return 0, false
	}
	if actor.ID != profileID {
		respondForbidden(c)
		return 0, false
	}
	return profileID, true
}

// ListFavorites returns a profile's favorite genres.
// GET /api/user-profile/:id/favorite-genres
func (gc *GenresController) ListFavorites(c *gin.Context) {
	profileID, ok := favoritesOwner(c)
	if !ok {
		return
	}
	favorites, err := gc.profiles.FavoriteGenres(profileID)
	if err != nil {
		respondInternalError(c, err, "list favorite genres")
		return
	}
	c.JSON(http.StatusOK, favorites)
}

type favoriteGenreRequest struct {
	GenreID uint `json:"genre_id"`
}

// AddFavorite marks a genre as a favorite of the profile.
// POST /api/user-profile/:id/favorite-genres
func (gc *GenresController) AddFavorite(c *gin.Context) {
	profileID, ok := favoritesOwner(c)
	if !ok {
		return
	}
	var req favoriteGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GenreID == 0 {
		respondBadRequest(c, "Missing required field: genre_id")
		return
	}
	favorite, err := gc.profiles.AddFavoriteGenre(profileID, req.GenreID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrGenreNotFound):
			respondBadRequest(c, "Check genre.")
		case errors.Is(err, accounts.ErrFavoriteExists):
			respondBadRequest(c, "Genre is already a favorite.")
		default:
			respondInternalError(c, err, "add favorite genre")
		}
		return
	}
	respondCreated(c, favorite)
}

// RemoveFavorite unmarks a favorite genre.
// DELETE /api/user-profile/:id/favorite-genres/:genreID
func (gc *GenresController) RemoveFavorite(c *gin.Context) {
	profileID, ok := favoritesOwner(c)
	if !ok {
		return
	}
	genreID, ok := parseIDParam(c, "genreID")
	if !ok {
		return
	}
	if err := gc.profiles.RemoveFavoriteGenre(profileID, genreID); err != nil {
		respondInternalError(c, err, "remove favorite genre")
		return
	}
	c.Status(http.StatusNoContent)
}
