// Package database owns the gorm connection, schema migration and the
// fixed-row seeding (roles).
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meninleo/goodreads/internal/entities"
)

var defaultRoles = []entities.Role{
	{ID: entities.RoleReader, Name: "reader"},
	{ID: entities.RoleLibrarian, Name: "librarian"},
	{ID: entities.RoleStaff, Name: "staff"},
	{ID: entities.RoleAdmin, Name: "admin"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Role{},
		&entities.UserProfile{},
		&entities.EmailSettings{},
		&entities.FeedSetting{},
		&entities.Shelve{},
		&entities.ReadingGroup{},
		&entities.ReadingGroupUsers{},
		&entities.ReadingGroupEmailSetting{},
		&entities.BookSeries{},
		&entities.Book{},
		&entities.BookEdition{},
		&entities.Author{},
		&entities.BookAuthor{},
		&entities.BookMetadata{},
		&entities.Genre{},
		&entities.FavoriteGenre{},
		&entities.BookReview{},
		&entities.BookShelve{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedRoles(); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedRoles() error {
	for _, role := range defaultRoles {
		var existing entities.Role
		result := d.DB.Where("id = ?", role.ID).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to create role %s: %w", role.Name, err)
			}
		}
	}
	return nil
}
