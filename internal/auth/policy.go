package auth

import "github.com/meninleo/goodreads/internal/entities"

// Authorization decisions are plain functions from (actor, target) to
// allow/deny. Group-admin checks need the membership table and live on the
// groups repository instead.

// CanManageProfile reports whether the actor may read or modify the profile
// identified by ownerID: the owner themselves, or Admin/Staff.
func CanManageProfile(actor *entities.UserProfile, ownerID uint) bool {
	if actor == nil {
		return false
	}
	if actor.ID == ownerID {
		return true
	}
	return actor.HasRole(entities.RoleAdmin) || actor.HasRole(entities.RoleStaff)
}

// CanEditBooks reports whether the actor may update or merge catalog books.
func CanEditBooks(actor *entities.UserProfile) bool {
	return actor != nil && actor.HasRole(entities.RoleLibrarian)
}
