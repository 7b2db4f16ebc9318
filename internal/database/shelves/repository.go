// Package shelves provides database operations for user shelves and the
// books placed on them.
package shelves

import (
	"errors"

	"gorm.io/gorm"

	"github.com/meninleo/goodreads/internal/entities"
)

var (
	ErrShelfNotFound = errors.New("shelf not found")
	ErrBookNotFound  = errors.New("book not found")
)

// Repository handles all shelf database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ForOwner(ownerID uint) ([]entities.Shelve, error) {
	var shelves []entities.Shelve
	err := r.db.Preload("Books").Where("owner_id = ?", ownerID).Order("id ASC").Find(&shelves).Error
	return shelves, err
}

func (r *Repository) GetByID(id uint) (*entities.Shelve, error) {
	var shelf entities.Shelve
	err := r.db.Preload("Books").First(&shelf, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShelfNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}

func (r *Repository) Create(ownerID uint, name string) (*entities.Shelve, error) {
	shelf := entities.Shelve{OwnerID: ownerID, Name: name}
	if err := r.db.Create(&shelf).Error; err != nil {
		return nil, err
	}
	return &shelf, nil
}

// AddBook shelves a book. Shelving a book twice is a no-op.
func (r *Repository) AddBook(shelfID, bookID uint) error {
	var book entities.Book
	if err := r.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	var existing entities.BookShelve
	err := r.db.Where("shelve_id = ? AND book_id = ?", shelfID, bookID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(&entities.BookShelve{ShelveID: shelfID, BookID: bookID}).Error
}

func (r *Repository) RemoveBook(shelfID, bookID uint) error {
	return r.db.Where("shelve_id = ? AND book_id = ?", shelfID, bookID).
		Delete(&entities.BookShelve{}).Error
}
