package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/database/books"
	"github.com/meninleo/goodreads/internal/entities"
)

// BooksController catalogues books, editions, authors and reviews.
type BooksController struct {
	books *books.Repository
}

func NewBooksController(booksRepo *books.Repository) *BooksController {
	return &BooksController{books: booksRepo}
}

type authorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// isbnString accepts both quoted strings and bare numbers, since clients
// send ISBNs either way.
type isbnString string

func (s *isbnString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = isbnString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = isbnString(n.String())
	return nil
}

type createBookRequest struct {
	Title       string          `json:"title"`
	SortByTitle string          `json:"sort_by_title"`
	Authors     []authorRequest `json:"authors"`

	ISBN        isbnString `json:"isbn"`
	Publisher   string     `json:"publisher"`
	Published   string     `json:"published"`
	Pages       int        `json:"pages"`
	Edition     string     `json:"edition"`
	Format      string     `json:"format"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	Cover       string     `json:"cover"`

	OrigTitle    string `json:"orig_title"`
	OrigPubDate  string `json:"orig_pub_date"`
	MediaType    string `json:"media_type"`
	SeriesName   string `json:"series_name"`
	SeriesNumber *int   `json:"series_number"`
}

const msgMissingBookFields = "Missing one or all required fields: title, sort_by_title and authors"

// Create catalogues a book with its first edition, authors and an empty
// metadata row for the creator.
// POST /api/books
func (bc *BooksController) Create(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" || req.SortByTitle == "" || len(req.Authors) == 0 {
		respondBadRequest(c, msgMissingBookFields)
		return
	}

	isbn := string(req.ISBN)
	if isbn != "" && !validISBN(isbn) {
		respondBadRequest(c, "ISBN must be a 10 or 13 digit number.")
		return
	}
	if req.SeriesName != "" && req.SeriesNumber == nil {
		respondBadRequest(c, "series_number is required when series_name is given.")
		return
	}

	input := books.CreateBookInput{
		UserID:       actor.ID,
		Title:        req.Title,
		SortByTitle:  req.SortByTitle,
		ISBN:         isbn,
		Publisher:    req.Publisher,
		Pages:        req.Pages,
		Edition:      req.Edition,
		Description:  req.Description,
		Language:     req.Language,
		Cover:        req.Cover,
		OrigTitle:    req.OrigTitle,
		MediaType:    req.MediaType,
		SeriesName:   req.SeriesName,
		SeriesNumber: req.SeriesNumber,
	}

	for _, a := range req.Authors {
		if a.FirstName == "" && a.LastName == "" {
			respondBadRequest(c, "Each author needs a first_name or last_name.")
			return
		}
		author := books.AuthorInput{FirstName: a.FirstName, LastName: a.LastName}
		if a.Role != "" {
			author.Role = entities.AuthorRole(a.Role)
		}
		input.Authors = append(input.Authors, author)
	}

	if req.Format != "" {
		input.Format = entities.BookFormat(req.Format)
	}
	if req.Published != "" {
		published, err := parseDate(req.Published)
		if err != nil {
			respondBadRequest(c, "published must be a YYYY-MM-DD date.")
			return
		}
		input.Published = published
	}
	if req.OrigPubDate != "" {
		origPubDate, err := parseDate(req.OrigPubDate)
		if err != nil {
			respondBadRequest(c, "orig_pub_date must be a YYYY-MM-DD date.")
			return
		}
		input.OrigPubDate = origPubDate
	}

	book, err := bc.books.CreateBook(input)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrEditionExists):
			respondBadRequest(c, "An edition with this ISBN already exists.")
		case errors.Is(err, books.ErrDuplicateBook):
			respondBadRequest(c, "This book already exists in the catalog.")
		case errors.Is(err, books.ErrMissingAuthorName):
			respondBadRequest(c, "Each author needs a first_name or last_name.")
		default:
			respondInternalError(c, err, "create book")
		}
		return
	}

	respondCreated(c, book)
}

func validISBN(s string) bool {
	if len(s) != 10 && len(s) != 13 {
		return false
	}
	for i, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		// ISBN-10 may end in the X check character.
		if len(s) == 10 && i == 9 && (r == 'X' || r == 'x') {
			continue
		}
		return false
	}
	return true
}

// List returns catalogued books with pagination.
// GET /api/books
func (bc *BooksController) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	items, total, err := bc.books.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(items)) < total,
	})
}

// Retrieve returns a book with its authors, editions and reviews.
// GET /api/books/:id
func (bc *BooksController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}
	c.JSON(http.StatusOK, book)
}

type updateBookRequest struct {
	UserID       *uint   `json:"user_id"`
	Title        *string `json:"title"`
	SortByTitle  *string `json:"sort_by_title"`
	OrigTitle    *string `json:"orig_title"`
	OrigPubDate  *string `json:"orig_pub_date"`
	MediaType    *string `json:"media_type"`
	SeriesNumber *int    `json:"series_number"`
}

// Update edits book attributes; librarians only. The cataloguing user
// can never be reassigned.
// PUT/PATCH /api/books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if !auth.CanEditBooks(actor) {
		respondForbidden(c)
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.UserID != nil {
		respondForbidden(c)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			respondBadRequest(c, msgMissingBookFields)
			return
		}
		book.Title = *req.Title
	}
	if req.SortByTitle != nil {
		if *req.SortByTitle == "" {
			respondBadRequest(c, msgMissingBookFields)
			return
		}
		book.SortByTitle = *req.SortByTitle
	}
	if req.OrigTitle != nil {
		book.OrigTitle = *req.OrigTitle
	}
	if req.MediaType != nil {
		book.MediaType = *req.MediaType
	}
	if req.SeriesNumber != nil {
		book.SeriesNumber = req.SeriesNumber
	}
	if req.OrigPubDate != nil {
		origPubDate, err := parseDate(*req.OrigPubDate)
		if err != nil {
			respondBadRequest(c, "orig_pub_date must be a YYYY-MM-DD date.")
			return
		}
		book.OrigPubDate = origPubDate
	}

	if err := bc.books.Save(book); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// CombineBooks is reserved for combining duplicate catalog entries.
// PUT /api/books/:id/combine-books
func (bc *BooksController) CombineBooks(c *gin.Context) {
	bc.stub(c)
}

// MergeBooks is reserved for merging two books into one record.
// PUT /api/books/:id/merge-books
func (bc *BooksController) MergeBooks(c *gin.Context) {
	bc.stub(c)
}

func (bc *BooksController) stub(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if !auth.CanEditBooks(actor) {
		respondForbidden(c)
		return
	}
	respondNotImplemented(c)
}

type createReviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// CreateReview records the authenticated profile's review of a book.
// One review per profile and book.
// POST /api/books/:id/reviews
func (bc *BooksController) CreateReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondBadRequest(c, "Rating must be between 1 and 5.")
		return
	}

	review, err := bc.books.CreateReview(actor.ID, bookID, req.Review, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, books.ErrAlreadyReviewed):
			respondBadRequest(c, "You have already reviewed this book.")
		default:
			respondInternalError(c, err, "create review")
		}
		return
	}

	respondCreated(c, review)
}

// ListReviews returns all reviews for a book.
// GET /api/books/:id/reviews
func (bc *BooksController) ListReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := bc.books.GetByID(bookID); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}
	reviews, err := bc.books.ListReviews(bookID)
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
