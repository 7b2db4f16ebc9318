// Package accounts provides database operations for user profiles and
// their notification settings.
package accounts

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/meninleo/goodreads/internal/entities"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrSettingsNotFound = errors.New("settings not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrFavoriteExists   = errors.New("genre already marked as favorite")
)

// Repository handles all user-profile database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProfile creates a profile together with its mandatory dependents:
// the Reader role assignment, EmailSettings, FeedSetting and the three
// default shelves. Everything commits or rolls back as one transaction, so
// a profile can never exist without its dependents.
func (r *Repository) CreateProfile(email, passwordHash, fullName string) (*entities.UserProfile, error) {
	var created entities.UserProfile

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.UserProfile
		result := tx.Where("email = ?", email).First(&existing)
		if result.Error == nil {
			return ErrEmailTaken
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing profile: %w", result.Error)
		}

		profile := entities.UserProfile{
			Username:     email,
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     fullName,
			Active:       true,
			IsActive:     true,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		var reader entities.Role
		if err := tx.First(&reader, entities.RoleReader).Error; err != nil {
			return fmt.Errorf("failed to load reader role: %w", err)
		}
		if err := tx.Model(&profile).Association("Roles").Append(&reader); err != nil {
			return fmt.Errorf("failed to assign reader role: %w", err)
		}

		if err := tx.Create(&entities.EmailSettings{UserID: profile.ID}).Error; err != nil {
			return fmt.Errorf("failed to create email settings: %w", err)
		}
		if err := tx.Create(&entities.FeedSetting{UserID: profile.ID}).Error; err != nil {
			return fmt.Errorf("failed to create feed setting: %w", err)
		}

		for _, name := range entities.DefaultShelfNames {
			shelf := entities.Shelve{OwnerID: profile.ID, Name: name}
			if err := tx.Create(&shelf).Error; err != nil {
				return fmt.Errorf("failed to create default shelf %q: %w", name, err)
			}
		}

		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(created.ID)
}

// GetByID loads a profile with its roles and shelves.
func (r *Repository) GetByID(id uint) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	err := r.db.Preload("Roles").Preload("Shelves").First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) GetByEmail(email string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	err := r.db.Preload("Roles").Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListActive returns active profiles, paginated, with the active total.
func (r *Repository) ListActive(limit, offset int) ([]entities.UserProfile, int64, error) {
	var total int64
	if err := r.db.Model(&entities.UserProfile{}).Where("active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entities.UserProfile
	query := r.db.Preload("Roles").Where("active = ?", true).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&profiles).Error
	return profiles, total, err
}

// Save persists profile attribute changes.
func (r *Repository) Save(profile *entities.UserProfile) error {
	return r.db.Save(profile).Error
}

// SoftDelete flips both the profile flag and the login-identity flag; the
// row stays in place.
func (r *Repository) SoftDelete(id uint) error {
	result := r.db.Model(&entities.UserProfile{}).Where("id = ?", id).
		Updates(map[string]any{"active": false, "is_active": false})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *Repository) EmailSettingsForUser(userID uint) (*entities.EmailSettings, error) {
	var settings entities.EmailSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *Repository) FeedSettingForUser(userID uint) (*entities.FeedSetting, error) {
	var settings entities.FeedSetting
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *Repository) EmailSettingsByID(id uint) (*entities.EmailSettings, error) {
	var settings entities.EmailSettings
	err := r.db.First(&settings, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *Repository) FeedSettingByID(id uint) (*entities.FeedSetting, error) {
	var settings entities.FeedSetting
	err := r.db.First(&settings, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *Repository) SaveEmailSettings(settings *entities.EmailSettings) error {
	return r.db.Save(settings).Error
}

func (r *Repository) SaveFeedSetting(settings *entities.FeedSetting) error {
	return r.db.Save(settings).Error
}

// FavoriteGenres lists a user's favorite genres with the genre preloaded.
func (r *Repository) FavoriteGenres(userID uint) ([]entities.FavoriteGenre, error) {
	var favorites []entities.FavoriteGenre
	err := r.db.Preload("Genre").Where("user_id = ?", userID).Find(&favorites).Error
	return favorites, err
}

func (r *Repository) AddFavoriteGenre(userID, genreID uint) (*entities.FavoriteGenre, error) {
	var genre entities.Genre
	if err := r.db.First(&genre, genreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	var existing entities.FavoriteGenre
	err := r.db.Where("user_id = ? AND genre_id = ?", userID, genreID).First(&existing).Error
	if err == nil {
		return nil, ErrFavoriteExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite := entities.FavoriteGenre{UserID: userID, GenreID: genreID}
	if err := r.db.Create(&favorite).Error; err != nil {
		return nil, err
	}
	favorite.Genre = genre
	return &favorite, nil
}

func (r *Repository) RemoveFavoriteGenre(userID, genreID uint) error {
	return r.db.Where("user_id = ? AND genre_id = ?", userID, genreID).
		Delete(&entities.FavoriteGenre{}).Error
}
