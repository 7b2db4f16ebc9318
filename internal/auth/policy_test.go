package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meninleo/goodreads/internal/entities"
)

func profileWithRoles(id uint, roleIDs ...uint) *entities.UserProfile {
	profile := &entities.UserProfile{ID: id}
	for _, roleID := range roleIDs {
		profile.Roles = append(profile.Roles, entities.Role{ID: roleID})
	}
	return profile
}

func TestCanManageProfile(t *testing.T) {
	owner := profileWithRoles(1, entities.RoleReader)
	admin := profileWithRoles(2, entities.RoleReader, entities.RoleAdmin)
	staff := profileWithRoles(3, entities.RoleReader, entities.RoleStaff)
	librarian := profileWithRoles(4, entities.RoleReader, entities.RoleLibrarian)

	assert.True(t, CanManageProfile(owner, 1), "owner manages their own profile")
	assert.True(t, CanManageProfile(admin, 1), "admin manages any profile")
	assert.True(t, CanManageProfile(staff, 1), "staff manages any profile")
	assert.False(t, CanManageProfile(librarian, 1), "librarian role grants no profile access")
	assert.False(t, CanManageProfile(owner, 2), "plain reader cannot touch other profiles")
	assert.False(t, CanManageProfile(nil, 1))
}

func TestCanEditBooks(t *testing.T) {
	reader := profileWithRoles(1, entities.RoleReader)
	librarian := profileWithRoles(2, entities.RoleReader, entities.RoleLibrarian)
	admin := profileWithRoles(3, entities.RoleReader, entities.RoleAdmin)

	assert.True(t, CanEditBooks(librarian))
	assert.False(t, CanEditBooks(reader))
	assert.False(t, CanEditBooks(admin), "admin is not implicitly a librarian")
	assert.False(t, CanEditBooks(nil))
}
