// Package groups provides database operations for reading groups,
// membership and the invitation workflow.
package groups

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/meninleo/goodreads/internal/entities"
)

var (
	ErrGroupNotFound = errors.New("reading group not found")
	ErrUserNotFound  = errors.New("user profile not found")
	ErrNotInvited    = errors.New("user has not been invited to this group")
)

// Repository handles all reading-group database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a group together with the creator's membership row
// (active, answered, admin) and the creator's group email setting, as one
// transaction.
func (r *Repository) Create(group *entities.ReadingGroup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		group.Active = true
		if err := tx.Create(group).Error; err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		membership := entities.ReadingGroupUsers{
			UserID:             group.CreatorID,
			GroupID:            group.ID,
			WhoInvitesID:       group.CreatorID,
			Active:             true,
			InvitationAnswered: true,
			IsAdmin:            true,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return fmt.Errorf("failed to create creator membership: %w", err)
		}

		setting := entities.ReadingGroupEmailSetting{GroupID: group.ID, UserID: group.CreatorID}
		if err := tx.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create group email setting: %w", err)
		}
		return nil
	})
}

func (r *Repository) GetByID(id uint) (*entities.ReadingGroup, error) {
	var group entities.ReadingGroup
	err := r.db.First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListActive returns active groups, paginated.
func (r *Repository) ListActive(limit, offset int) ([]entities.ReadingGroup, int64, error) {
	var total int64
	if err := r.db.Model(&entities.ReadingGroup{}).Where("active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []entities.ReadingGroup
	query := r.db.Where("active = ?", true).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&groups).Error
	return groups, total, err
}

func (r *Repository) Save(group *entities.ReadingGroup) error {
	return r.db.Save(group).Error
}

// SoftDelete flips the group's active flag; rows are never removed.
func (r *Repository) SoftDelete(id uint) error {
	result := r.db.Model(&entities.ReadingGroup{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// IsGroupAdmin reports whether the user is the group's creator or a member
// flagged is_admin.
func (r *Repository) IsGroupAdmin(groupID, userID uint) (bool, error) {
	group, err := r.GetByID(groupID)
	if err != nil {
		return false, err
	}
	if group.CreatorID == userID {
		return true, nil
	}

	var count int64
	err = r.db.Model(&entities.ReadingGroupUsers{}).
		Where("group_id = ? AND user_id = ? AND is_admin = ?", groupID, userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Invite records a pending invitation for the user. Inviting a user who
// already has a membership row (pending or accepted) is a no-op; the
// existing row is returned with created=false.
func (r *Repository) Invite(groupID, inviteeID, inviterID uint) (*entities.ReadingGroupUsers, bool, error) {
	if _, err := r.GetByID(groupID); err != nil {
		return nil, false, err
	}
	var invitee entities.UserProfile
	if err := r.db.First(&invitee, inviteeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, err
	}

	var existing entities.ReadingGroupUsers
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, inviteeID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	invitation := entities.ReadingGroupUsers{
		UserID:       inviteeID,
		GroupID:      groupID,
		WhoInvitesID: inviterID,
	}
	if err := r.db.Create(&invitation).Error; err != nil {
		return nil, false, err
	}
	return &invitation, true, nil
}

// AcceptInvitation activates the user's pending membership rows for the
// group and creates the member's group email setting, transactionally.
// Returns ErrNotInvited when no pending row exists, and ErrUserNotFound /
// ErrGroupNotFound when the referenced entities are missing.
func (r *Repository) AcceptInvitation(groupID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user entities.UserProfile
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		var group entities.ReadingGroup
		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		result := tx.Model(&entities.ReadingGroupUsers{}).
			Where("group_id = ? AND user_id = ? AND active = ?", groupID, userID, false).
			Updates(map[string]any{"active": true, "invitation_answered": true})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotInvited
		}

		setting := entities.ReadingGroupEmailSetting{GroupID: groupID, UserID: userID}
		if err := tx.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create group email setting: %w", err)
		}
		return nil
	})
}

// Membership returns the membership row for (group, user), if any.
func (r *Repository) Membership(groupID, userID uint) (*entities.ReadingGroupUsers, error) {
	var membership entities.ReadingGroupUsers
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotInvited
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}
