package entities

import (
	"time"

	"gorm.io/datatypes"
)

type AuthorRole string

const (
	AuthorRoleAuthor      AuthorRole = "AU"
	AuthorRoleIllustrator AuthorRole = "IL"
	AuthorRoleTranslator  AuthorRole = "TR"
	AuthorRoleEditor      AuthorRole = "ED"
)

type BookFormat string

const (
	BookFormatPaperback BookFormat = "PB"
	BookFormatHardcover BookFormat = "HC"
	BookFormatEbook     BookFormat = "EB"
	BookFormatAudio     BookFormat = "AB"
)

type Book struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index" json:"user_id"`
	Title       string `gorm:"index;size:150" json:"title"`
	SortByTitle string `gorm:"size:150" json:"sort_by_title"`
	MediaType   string `gorm:"size:2" json:"media_type,omitempty"`

	OrigTitle   string          `gorm:"size:150" json:"orig_title,omitempty"`
	OrigPubDate *datatypes.Date `json:"orig_pub_date,omitempty"`

	SeriesID     *uint `gorm:"index" json:"series_id,omitempty"`
	SeriesNumber *int  `json:"series_number,omitempty"`

	User     UserProfile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Series   *BookSeries    `gorm:"foreignKey:SeriesID" json:"series,omitempty"`
	Authors  []Author       `gorm:"many2many:BookAuthor;joinForeignKey:BookID;joinReferences:AuthorID" json:"authors,omitempty"`
	Editions []BookEdition  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"editions,omitempty"`
	Reviews  []BookReview   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Metadata []BookMetadata `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookEdition is one published version of a book. The ISBN, when present,
// is unique across the whole catalog.
type BookEdition struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BookID uint `gorm:"index" json:"book_id"`

	ISBN      *string         `gorm:"uniqueIndex;size:13" json:"isbn,omitempty"`
	Publisher string          `gorm:"size:150" json:"publisher,omitempty"`
	Published *datatypes.Date `json:"published,omitempty"`
	Edition   string          `gorm:"size:50" json:"edition,omitempty"`
	Pages     int             `json:"pages,omitempty"`
	Format    BookFormat      `gorm:"size:2;default:'PB'" json:"format"`

	Description string `gorm:"type:text" json:"description,omitempty"`
	Language    string `gorm:"size:7;default:'en'" json:"language"`
	Cover       string `gorm:"size:1024" json:"cover,omitempty"`

	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author rows are deduplicated by (first_name, last_name) at creation.
type Author struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"index:idx_author_name,priority:1;size:100" json:"first_name"`
	LastName  string     `gorm:"index:idx_author_name,priority:2;size:100" json:"last_name"`
	Role      AuthorRole `gorm:"size:2;default:'AU'" json:"role"`

	Books []Book `gorm:"many2many:BookAuthor;joinForeignKey:AuthorID;joinReferences:BookID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// BookAuthor joins books and authors. Primary marks the principal
// credit-holder; the first-listed author at creation time.
type BookAuthor struct {
	BookID   uint `gorm:"primaryKey" json:"book_id"`
	AuthorID uint `gorm:"primaryKey" json:"author_id"`
	Primary  bool `gorm:"column:primary_author;default:false" json:"primary"`

	Book   Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Author Author `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

type BookSeries struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:150" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

// BookMetadata carries a user's free-form descriptive tags for a book.
// An empty row is created for the creator when the book is catalogued.
type BookMetadata struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BookID uint `gorm:"index" json:"book_id"`
	UserID uint `gorm:"index" json:"user_id"`

	Genre                string `gorm:"size:100" json:"genre,omitempty"`
	Pace                 string `gorm:"size:50" json:"pace,omitempty"`
	Tone                 string `gorm:"size:100" json:"tone,omitempty"`
	Style                string `gorm:"size:100" json:"style,omitempty"`
	NarrationPerspective string `gorm:"size:50" json:"narration_perspective,omitempty"`
	Tense                string `gorm:"size:20" json:"tense,omitempty"`

	CharacterDriven *bool `json:"character_driven,omitempty"`
	PlotDriven      *bool `json:"plot_driven,omitempty"`
	LightHearted    *bool `json:"light_hearted,omitempty"`
	Dark            *bool `json:"dark,omitempty"`
	Emotional       *bool `json:"emotional,omitempty"`
	Funny           *bool `json:"funny,omitempty"`

	Book      Book        `gorm:"foreignKey:BookID" json:"-"`
	User      UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

type FavoriteGenre struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"index:idx_favorite_genre,priority:1" json:"user_id"`
	GenreID uint `gorm:"index:idx_favorite_genre,priority:2" json:"genre_id"`

	User      UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Genre     Genre       `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"genre,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type BookReview struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index:idx_review_user_book,priority:1" json:"user_id"`
	BookID uint `gorm:"index:idx_review_user_book,priority:2" json:"book_id"`

	Review string `gorm:"type:text" json:"review,omitempty"`
	Rating int    `json:"rating"`

	User      UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book      Book        `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BookShelve joins shelves and books.
type BookShelve struct {
	ShelveID uint `gorm:"primaryKey" json:"shelve_id"`
	BookID   uint `gorm:"primaryKey" json:"book_id"`

	Shelve Shelve `gorm:"foreignKey:ShelveID;constraint:OnDelete:CASCADE" json:"-"`
	Book   Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Book) TableName() string {
	return "Book"
}

func (BookEdition) TableName() string {
	return "BookEdition"
}

func (Author) TableName() string {
	return "Author"
}

func (BookAuthor) TableName() string {
	return "BookAuthor"
}

func (BookSeries) TableName() string {
	return "BookSeries"
}

func (BookMetadata) TableName() string {
	return "BookMetadata"
}

func (Genre) TableName() string {
	return "Genre"
}

func (FavoriteGenre) TableName() string {
	return "FavoriteGenre"
}

func (BookReview) TableName() string {
	return "BookReview"
}

func (BookShelve) TableName() string {
	return "BookShelve"
}
