// Package books provides database operations for the catalog: books,
// editions, authors, series, metadata, reviews and genres.
package books

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/meninleo/goodreads/internal/entities"
)

var (
	ErrEditionExists     = errors.New("edition already exists")
	ErrDuplicateBook     = errors.New("a book with this title, series and series number already exists")
	ErrBookNotFound      = errors.New("book not found")
	ErrMissingAuthorName = errors.New("missing author's name")
	ErrAlreadyReviewed   = errors.New("user already reviewed this book")
	ErrGenreExists       = errors.New("genre already exists")
)

// AuthorInput identifies an author by name; created when absent.
type AuthorInput struct {
	FirstName string
	LastName  string
	Role      entities.AuthorRole
}

// CreateBookInput carries everything the catalog needs to record a book
// and its first edition.
type CreateBookInput struct {
	UserID      uint
	Title       string
	SortByTitle string
	Authors     []AuthorInput

	ISBN        string
	Publisher   string
	Published   *datatypes.Date
	Pages       int
	Edition     string
	Format      entities.BookFormat
	Description string
	Language    string
	Cover       string

	OrigTitle    string
	OrigPubDate  *datatypes.Date
	MediaType    string
	SeriesName   string
	SeriesNumber *int
}

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook records a book, its edition, its author links and an empty
// metadata row for the creator, all-or-nothing. The ISBN and the
// (title, series, series number) triple are pre-checked for uniqueness.
// Authors are resolved by (first name, last name) and created when absent;
// the first listed author becomes the primary credit-holder.
func (r *Repository) CreateBook(input CreateBookInput) (*entities.Book, error) {
	var bookID uint

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if input.ISBN != "" {
			var count int64
			if err := tx.Model(&entities.BookEdition{}).Where("isbn = ?", input.ISBN).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check edition isbn: %w", err)
			}
			if count > 0 {
				return ErrEditionExists
			}
		}

		var seriesID *uint
		if input.SeriesName != "" {
			series, err := getOrCreateSeries(tx, input.SeriesName)
			if err != nil {
				return err
			}
			seriesID = &series.ID

			if input.ISBN != "" {
				var count int64
				err := tx.Model(&entities.Book{}).
					Where("title = ? AND series_id = ? AND series_number = ?",
						input.Title, series.ID, input.SeriesNumber).
					Count(&count).Error
				if err != nil {
					return fmt.Errorf("failed to check series duplicate: %w", err)
				}
				if count > 0 {
					return ErrDuplicateBook
				}
			}
		}

		book := entities.Book{
			UserID:       input.UserID,
			Title:        input.Title,
			SortByTitle:  input.SortByTitle,
			MediaType:    input.MediaType,
			OrigTitle:    input.OrigTitle,
			OrigPubDate:  input.OrigPubDate,
			SeriesID:     seriesID,
			SeriesNumber: input.SeriesNumber,
		}
		if err := tx.Create(&book).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}

		if err := linkAuthors(tx, book.ID, input.Authors); err != nil {
			return err
		}

		edition := entities.BookEdition{
			BookID:      book.ID,
			Publisher:   input.Publisher,
			Published:   input.Published,
			Edition:     input.Edition,
			Pages:       input.Pages,
			Format:      input.Format,
			Description: input.Description,
			Language:    input.Language,
			Cover:       input.Cover,
		}
		if input.ISBN != "" {
			isbn := input.ISBN
			edition.ISBN = &isbn
		}
		if edition.Format == "" {
			edition.Format = entities.BookFormatPaperback
		}
		if edition.Language == "" {
			edition.Language = "en"
		}
		if err := tx.Create(&edition).Error; err != nil {
			return fmt.Errorf("failed to create edition: %w", err)
		}

		metadata := entities.BookMetadata{BookID: book.ID, UserID: input.UserID}
		if err := tx.Create(&metadata).Error; err != nil {
			return fmt.Errorf("failed to create book metadata: %w", err)
		}

		bookID = book.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(bookID)
}

func getOrCreateSeries(tx *gorm.DB, name string) (*entities.BookSeries, error) {
	var series entities.BookSeries
	err := tx.Where("name = ?", name).First(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		series = entities.BookSeries{Name: name}
		if err := tx.Create(&series).Error; err != nil {
			return nil, fmt.Errorf("failed to create series: %w", err)
		}
		return &series, nil
	}
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func linkAuthors(tx *gorm.DB, bookID uint, inputs []AuthorInput) error {
	linked := make(map[string]bool)
	first := true
	for _, in := range inputs {
		if in.FirstName == "" && in.LastName == "" {
			return ErrMissingAuthorName
		}
		role := in.Role
		if role == "" {
			role = entities.AuthorRoleAuthor
		}

		key := in.FirstName + "|" + in.LastName
		if linked[key] {
			// Duplicate author entries in one request collapse to one link.
			continue
		}
		linked[key] = true

		var author entities.Author
		err := tx.Where("first_name = ? AND last_name = ?", in.FirstName, in.LastName).First(&author).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			author = entities.Author{FirstName: in.FirstName, LastName: in.LastName, Role: role}
			if err := tx.Create(&author).Error; err != nil {
				return fmt.Errorf("failed to create author: %w", err)
			}
		} else if err != nil {
			return err
		}

		link := entities.BookAuthor{BookID: bookID, AuthorID: author.ID, Primary: first}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link author: %w", err)
		}
		first = false
	}
	return nil
}

// GetByID loads a book with its editions, authors, series and reviews.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors").Preload("Editions").Preload("Series").
		Preload("Reviews").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) List(limit, offset int) ([]entities.Book, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	query := r.db.Preload("Authors").Preload("Editions").Preload("Series").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&books).Error
	return books, total, err
}

// Save persists book attribute changes.
func (r *Repository) Save(book *entities.Book) error {
	return r.db.Omit("Authors", "Editions", "Series", "Reviews", "Metadata").Save(book).Error
}

// PrimaryAuthor returns the book's primary-flagged author link, if any.
func (r *Repository) PrimaryAuthor(bookID uint) (*entities.Author, error) {
	var link entities.BookAuthor
	err := r.db.Where("book_id = ? AND primary_author = ?", bookID, true).First(&link).Error
	if err != nil {
		return nil, err
	}
	var author entities.Author
	if err := r.db.First(&author, link.AuthorID).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// CreateReview records a user's review; a user reviews a book at most once.
func (r *Repository) CreateReview(userID, bookID uint, review string, rating int) (*entities.BookReview, error) {
	var book entities.Book
	if err := r.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	var existing entities.BookReview
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyReviewed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bookReview := entities.BookReview{UserID: userID, BookID: bookID, Review: review, Rating: rating}
	if err := r.db.Create(&bookReview).Error; err != nil {
		return nil, err
	}
	return &bookReview, nil
}

func (r *Repository) ListReviews(bookID uint) ([]entities.BookReview, error) {
	var reviews []entities.BookReview
	err := r.db.Where("book_id = ?", bookID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *Repository) ListGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *Repository) CreateGenre(name string) (*entities.Genre, error) {
	var existing entities.Genre
	err := r.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrGenreExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := entities.Genre{Name: name}
	if err := r.db.Create(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}
