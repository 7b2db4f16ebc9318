package http

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/groups"
	"github.com/meninleo/goodreads/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserProfilesController handles profile CRUD, the per-profile settings
// reads and invitation acceptance.
type UserProfilesController struct {
	profiles   *accounts.Repository
	groups     *groups.Repository
	bcryptCost int
}

func NewUserProfilesController(profiles *accounts.Repository, groupRepo *groups.Repository, bcryptCost int) *UserProfilesController {
	return &UserProfilesController{profiles: profiles, groups: groupRepo, bcryptCost: bcryptCost}
}

type createProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// profileResponse augments the entity with the identifiers of its
// dependent settings rows.
type profileResponse struct {
	entities.UserProfile
	EmailSettingsID uint `json:"email_settings"`
	FeedSettingsID  uint `json:"feed_settings"`
}

func (uc *UserProfilesController) serialize(profile *entities.UserProfile) profileResponse {
	response := profileResponse{UserProfile: *profile}
	if settings, err := uc.profiles.EmailSettingsForUser(profile.ID); err == nil {
		response.EmailSettingsID = settings.ID
	}
	if settings, err := uc.profiles.FeedSettingForUser(profile.ID); err == nil {
		response.FeedSettingsID = settings.ID
	}
	return response
}

// Create registers a new profile with its default shelves and settings.
// POST /api/user-profile
func (uc *UserProfilesController) Create(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		respondBadRequest(c, "email, password and full_name are required")
		return
	}
	if len(req.Email) > 254 || !emailPattern.MatchString(req.Email) {
		respondBadRequest(c, "invalid email format")
		return
	}

	hash, err := auth.HashPassword(req.Password, uc.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "hash password")
		return
	}

	profile, err := uc.profiles.CreateProfile(req.Email, hash, req.FullName)
	if err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) {
			respondBadRequest(c, "the email provided belongs to another account")
			return
		}
		respondInternalError(c, err, "create profile")
		return
	}

	respondCreated(c, uc.serialize(profile))
}

// List returns active profiles only, paginated.
// GET /api/user-profile
func (uc *UserProfilesController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	profiles, total, err := uc.profiles.ListActive(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list profiles")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    profiles,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(profiles)) < total,
	})
}

// Retrieve returns one profile; owner or Admin/Staff only.
// GET /api/user-profile/:id
func (uc *UserProfilesController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if !auth.CanManageProfile(actor, id) {
		respondForbidden(c)
		return
	}

	profile, err := uc.profiles.GetByID(id)
	if err != nil {
		if errors.Is(err, accounts.ErrProfileNotFound) {
			respondNotFound(c, "user profile")
			return
		}
		respondInternalError(c, err, "retrieve profile")
		return
	}

	c.JSON(http.StatusOK, uc.serialize(profile))
}

type updateProfileRequest struct {
	FullName          *string              `json:"full_name"`
	Birthday          *string              `json:"birthday"`
	WhoCanSeeLastName *entities.Visibility `json:"who_can_see_last_name"`
	Photo             *string              `json:"photo"`
	City              *string              `json:"city"`
	State             *string              `json:"state"`
	Country           *string              `json:"country"`
	LocationView      *entities.Visibility `json:"location_view"`
	Gender            *entities.Gender     `json:"gender"`
	GenderView        *entities.Visibility `json:"gender_view"`
	AgeView           *int                 `json:"age_view"`
	WebSite           *string              `json:"web_site"`
	Interests         *string              `json:"interests"`
	KindBooks         *string              `json:"kind_books"`
	AboutMe           *string              `json:"about_me"`
}

// Update modifies profile attributes; owner or Admin/Staff only. PUT and
// PATCH share the apply-what-is-present semantics; identity fields (email,
// password, active flags) are never writable through this path.
// PUT/PATCH /api/user-profile/:id
func (uc *UserProfilesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if !auth.CanManageProfile(actor, id) {
		respondForbidden(c)
		return
	}

	profile, err := uc.profiles.GetByID(id)
	if err != nil {
		if errors.Is(err, accounts.ErrProfileNotFound) {
			respondNotFound(c, "user profile")
			return
		}
		respondInternalError(c, err, "load profile")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Birthday != nil {
		birthday, err := parseDate(*req.Birthday)
		if err != nil {
			respondBadRequest(c, "invalid birthday, expected YYYY-MM-DD")
			return
		}
		profile.Birthday = birthday
	}
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&profile.FullName, req.FullName)
	applyString(&profile.Photo, req.Photo)
	applyString(&profile.City, req.City)
	applyString(&profile.State, req.State)
	applyString(&profile.Country, req.Country)
	applyString(&profile.WebSite, req.WebSite)
	applyString(&profile.Interests, req.Interests)
	applyString(&profile.KindBooks, req.KindBooks)
	applyString(&profile.AboutMe, req.AboutMe)
	if req.WhoCanSeeLastName != nil {
		profile.WhoCanSeeLastName = *req.WhoCanSeeLastName
	}
	if req.LocationView != nil {
		profile.LocationView = *req.LocationView
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.GenderView != nil {
		profile.GenderView = *req.GenderView
	}
	if req.AgeView != nil {
		profile.AgeView = *req.AgeView
	}

	if err := uc.profiles.Save(profile); err != nil {
		respondInternalError(c, err, "update profile")
		return
	}

	c.JSON(http.StatusOK, uc.serialize(profile))
}

// Delete soft-deletes a profile: the row stays, both active flags flip off.
// DELETE /api/user-profile/:id
func (uc *UserProfilesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if !auth.CanManageProfile(actor, id) {
		respondForbidden(c)
		return
	}

	if err := uc.profiles.SoftDelete(id); err != nil {
		if errors.Is(err, accounts.ErrProfileNotFound) {
			respondNotFound(c, "user profile")
			return
		}
		respondInternalError(c, err, "delete profile")
		return
	}

	c.Status(http.StatusNoContent)
}

// EmailSetting returns the profile's email notification settings; the
// settings belong to their profile alone.
// GET /api/user-profile/:id/email-setting
func (uc *UserProfilesController) EmailSetting(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if actor.ID != id {
		respondForbidden(c)
		return
	}

	settings, err := uc.profiles.EmailSettingsForUser(id)
	if err != nil {
		if errors.Is(err, accounts.ErrSettingsNotFound) {
			respondBadRequest(c, "email settings do not exist for this account")
			return
		}
		respondInternalError(c, err, "get email settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// FeedSetting returns the profile's feed settings; owner only.
// GET /api/user-profile/:id/feed-setting
func (uc *UserProfilesController) FeedSetting(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if actor.ID != id {
		respondForbidden(c)
		return
	}

	settings, err := uc.profiles.FeedSettingForUser(id)
	if err != nil {
		if errors.Is(err, accounts.ErrSettingsNotFound) {
			respondBadRequest(c, "feed settings do not exist for this account")
			return
		}
		respondInternalError(c, err, "get feed settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

type acceptInvitationRequest struct {
	GroupID uint `json:"group_id"`
}

// AcceptGroupInvitation accepts a pending group invitation for the profile
// in the path. Workflow-state failures report 400: unknown ids here are
// payload references, not path resources.
// PUT /api/user-profile/:id/user-group-invitation
func (uc *UserProfilesController) AcceptGroupInvitation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}
	if actor.ID != id {
		respondForbidden(c)
		return
	}

	var req acceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GroupID == 0 {
		respondBadRequest(c, "group_id is required")
		return
	}

	err := uc.groups.AcceptInvitation(req.GroupID, id)
	switch {
	case err == nil:
		respondWorkflowSuccess(c, "Invitation accepted")
	case errors.Is(err, groups.ErrNotInvited):
		respondBadRequest(c, "User hasn't been invited to be part of this group.")
	case errors.Is(err, groups.ErrUserNotFound), errors.Is(err, groups.ErrGroupNotFound):
		respondBadRequest(c, "Check user and group.")
	default:
		respondInternalError(c, err, "accept invitation")
	}
}
