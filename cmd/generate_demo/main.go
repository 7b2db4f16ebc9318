// Command generate_demo creates a demo database with sample profiles,
// public domain books, a reading group and reviews.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/database"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/books"
	"github.com/meninleo/goodreads/internal/database/groups"
	"github.com/meninleo/goodreads/internal/database/shelves"
	"github.com/meninleo/goodreads/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// Everything is created with this password so demo accounts are usable.
const demoPassword = "demo-password"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	profilesRepo := accounts.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	groupsRepo := groups.NewRepository(db.DB)
	shelvesRepo := shelves.NewRepository(db.DB)

	librarian := createProfile(db, profilesRepo, "librarian@demo.local", "Lena Ortiz", entities.RoleLibrarian)
	alice := createProfile(db, profilesRepo, "alice@demo.local", "Alice Whitfield")
	bob := createProfile(db, profilesRepo, "bob@demo.local", "Bob Tanaka")

	genres := createGenres(booksRepo)
	if classic, ok := genres["classic"]; ok {
		if _, err := profilesRepo.AddFavoriteGenre(alice.ID, classic.ID); err != nil {
			log.Printf("Failed to add favorite genre for %s: %v", alice.Email, err)
		}
	}

	created := make([]*entities.Book, 0)
	for _, input := range publicDomainBooks(librarian.ID) {
		book, err := booksRepo.CreateBook(input)
		if err != nil {
			log.Printf("Failed to save book %s: %v", input.Title, err)
			continue
		}
		log.Printf("Saved: %s (%d authors)", book.Title, len(input.Authors))
		created = append(created, book)
	}

	addReviews(booksRepo, alice.ID, bob.ID, created)
	shelveBooks(shelvesRepo, alice.ID, created)

	group := &entities.ReadingGroup{
		CreatorID:    alice.ID,
		Name:         "Classics Circle",
		Description:  "Slow reads of public domain classics.",
		Privacy:      entities.GroupPrivacyPublic,
		Topic:        "classic literature",
		EmailCadence: entities.EmailCadenceWeekly,
	}
	if err := groupsRepo.Create(group); err != nil {
		log.Fatalf("Failed to create reading group: %v", err)
	}
	if _, _, err := groupsRepo.Invite(group.ID, bob.ID, alice.ID); err != nil {
		log.Fatalf("Failed to invite member: %v", err)
	}
	if err := groupsRepo.AcceptInvitation(group.ID, bob.ID); err != nil {
		log.Fatalf("Failed to accept invitation: %v", err)
	}
	log.Printf("Created group %q with %s as a member", group.Name, bob.Email)

	log.Println("Demo database generated successfully!")
}

func createProfile(db *database.Database, repo *accounts.Repository, email, fullName string, roleIDs ...uint) *entities.UserProfile {
	hash, err := auth.HashPassword(demoPassword, auth.DefaultBcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	profile, err := repo.CreateProfile(email, hash, fullName)
	if err != nil {
		log.Fatalf("Failed to create profile %s: %v", email, err)
	}
	for _, roleID := range roleIDs {
		var role entities.Role
		if err := db.DB.First(&role, roleID).Error; err != nil {
			log.Fatalf("Failed to load role %d: %v", roleID, err)
		}
		if err := db.DB.Model(profile).Association("Roles").Append(&role); err != nil {
			log.Fatalf("Failed to grant role to %s: %v", email, err)
		}
	}
	log.Printf("Created profile: %s", email)
	return profile
}

func createGenres(repo *books.Repository) map[string]*entities.Genre {
	names := []string{
		"philosophy",
		"fiction",
		"classic",
		"science",
	}

	genres := make(map[string]*entities.Genre)
	for _, name := range names {
		genre, err := repo.CreateGenre(name)
		if err != nil {
			log.Printf("Failed to create genre %s: %v", name, err)
			continue
		}
		genres[name] = genre
	}
	return genres
}

func publicDomainBooks(userID uint) []books.CreateBookInput {
	return []books.CreateBookInput{
		{
			UserID:      userID,
			Title:       "Meditations",
			SortByTitle: "Meditations",
			Authors:     []books.AuthorInput{{FirstName: "Marcus", LastName: "Aurelius"}},
			ISBN:        "9780140449334",
			Publisher:   "Penguin Classics",
			Published:   date(2006, 4, 25),
			Pages:       254,
			Format:      entities.BookFormatPaperback,
			Language:    "en",
			Description: "Private reflections of the Roman emperor on Stoic practice.",
			OrigPubDate: date(180, 1, 1),
		},
		{
			UserID:      userID,
			Title:       "Pride and Prejudice",
			SortByTitle: "Pride and Prejudice",
			Authors:     []books.AuthorInput{{FirstName: "Jane", LastName: "Austen"}},
			ISBN:        "9780141439518",
			Publisher:   "Penguin Classics",
			Published:   date(2002, 12, 31),
			Pages:       480,
			Format:      entities.BookFormatPaperback,
			Language:    "en",
			OrigPubDate: date(1813, 1, 28),
		},
		{
			UserID:      userID,
			Title:       "Frankenstein",
			SortByTitle: "Frankenstein",
			Authors:     []books.AuthorInput{{FirstName: "Mary", LastName: "Shelley"}},
			ISBN:        "9780141439471",
			Publisher:   "Penguin Classics",
			Published:   date(2003, 1, 1),
			Pages:       288,
			Format:      entities.BookFormatPaperback,
			Language:    "en",
			OrigPubDate: date(1818, 1, 1),
		},
		{
			UserID:       userID,
			Title:        "The Fellowship of the Ring",
			SortByTitle:  "Fellowship of the Ring, The",
			Authors:      []books.AuthorInput{{FirstName: "J. R. R.", LastName: "Tolkien"}},
			ISBN:         "9780547928210",
			Publisher:    "Mariner Books",
			Published:    date(2012, 9, 18),
			Pages:        432,
			Format:       entities.BookFormatPaperback,
			Language:     "en",
			SeriesName:   "The Lord of the Rings",
			SeriesNumber: intPtr(1),
			OrigPubDate:  date(1954, 7, 29),
		},
		{
			UserID:      userID,
			Title:       "On the Origin of Species",
			SortByTitle: "On the Origin of Species",
			Authors:     []books.AuthorInput{{FirstName: "Charles", LastName: "Darwin"}},
			ISBN:        "9780451529060",
			Publisher:   "Signet Classics",
			Published:   date(2003, 9, 2),
			Pages:       576,
			Format:      entities.BookFormatPaperback,
			Language:    "en",
			OrigPubDate: date(1859, 11, 24),
		},
	}
}

func addReviews(repo *books.Repository, aliceID, bobID uint, created []*entities.Book) {
	reviews := []struct {
		userID uint
		text   string
		rating int
	}{
		{aliceID, "A book to reread every year.", 5},
		{bobID, "Dense in places but rewarding.", 4},
	}

	for _, book := range created {
		for _, r := range reviews {
			if _, err := repo.CreateReview(r.userID, book.ID, r.text, r.rating); err != nil {
				log.Printf("Failed to review %s: %v", book.Title, err)
			}
		}
	}
}

// shelveBooks puts every demo book on the owner's "read" shelf.
func shelveBooks(repo *shelves.Repository, ownerID uint, created []*entities.Book) {
	owned, err := repo.ForOwner(ownerID)
	if err != nil {
		log.Printf("Failed to list shelves: %v", err)
		return
	}
	for _, shelf := range owned {
		if shelf.Name != "read" {
			continue
		}
		for _, book := range created {
			if err := repo.AddBook(shelf.ID, book.ID); err != nil {
				log.Printf("Failed to shelve %s: %v", book.Title, err)
			}
		}
		return
	}
}

func date(year int, month time.Month, day int) *datatypes.Date {
	d := datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func intPtr(v int) *int {
	return &v
}
