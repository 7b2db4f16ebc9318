package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/database/accounts"
	"github.com/meninleo/goodreads/internal/database/groups"
	"github.com/meninleo/goodreads/internal/emails"
	"github.com/meninleo/goodreads/internal/entities"
	"github.com/meninleo/goodreads/internal/tokens"
)

// ReadingGroupsController manages reading groups and the invitation workflow.
type ReadingGroupsController struct {
	groups    *groups.Repository
	profiles  *accounts.Repository
	tokenizer *tokens.InvitationTokenizer
	sender    emails.Sender
	baseURL   string
}

func NewReadingGroupsController(
	groupsRepo *groups.Repository,
	profiles *accounts.Repository,
	tokenizer *tokens.InvitationTokenizer,
	sender emails.Sender,
	baseURL string,
) *ReadingGroupsController {
	return &ReadingGroupsController{
		groups:    groupsRepo,
		profiles:  profiles,
		tokenizer: tokenizer,
		sender:    sender,
		baseURL:   baseURL,
	}
}

type createGroupRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Privacy      string `json:"privacy"`
	Topic        string `json:"topic"`
	Rules        string `json:"rules"`
	AdultOnly    bool   `json:"adult_only"`
	EmailCadence string `json:"email_cadence"`
}

// Create registers a reading group with the authenticated profile as its
// creator and first admin member.
// POST /api/reading-group
func (gc *ReadingGroupsController) Create(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		respondBadRequest(c, "Missing required field: name")
		return
	}

	group := &entities.ReadingGroup{
		CreatorID:   actor.ID,
		Name:        req.Name,
		Description: req.Description,
		Topic:       req.Topic,
		Rules:       req.Rules,
		AdultOnly:   req.AdultOnly,
	}
	if req.Privacy != "" {
		privacy := entities.GroupPrivacy(req.Privacy)
		if !privacy.Valid() {
			respondBadRequest(c, "Invalid privacy value.")
			return
		}
		group.Privacy = privacy
	}
	if req.EmailCadence != "" {
		cadence := entities.EmailCadence(req.EmailCadence)
		if !cadence.Valid() {
			respondBadRequest(c, "Invalid email_cadence value.")
			return
		}
		group.EmailCadence = cadence
	}

	if err := gc.groups.Create(group); err != nil {
		respondInternalError(c, err, "create reading group")
		return
	}

	respondCreated(c, group)
}

// List returns active groups with pagination.
// GET /api/reading-group
func (gc *ReadingGroupsController) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	items, total, err := gc.groups.ListActive(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list reading groups")
		return
	}
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(items)) < total,
	})
}

// Retrieve returns a single reading group.
// GET /api/reading-group/:id
func (gc *ReadingGroupsController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	group, err := gc.groups.GetByID(id)
	if err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			respondNotFound(c, "reading group")
			return
		}
		respondInternalError(c, err, "load reading group")
		return
	}
	c.JSON(http.StatusOK, group)
}

type updateGroupRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Privacy      *string `json:"privacy"`
	Topic        *string `json:"topic"`
	Rules        *string `json:"rules"`
	AdultOnly    *bool   `json:"adult_only"`
	EmailCadence *string `json:"email_cadence"`
}

// Update edits group attributes; only group admins may do so.
// PUT/PATCH /api/reading-group/:id
func (gc *ReadingGroupsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	group, err := gc.groups.GetByID(id)
	if err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			respondNotFound(c, "reading group")
			return
		}
		respondInternalError(c, err, "load reading group")
		return
	}

	isAdmin, err := gc.groups.IsGroupAdmin(id, actor.ID)
	if err != nil {
		respondInternalError(c, err, "check group admin")
		return
	}
	if !isAdmin {
		respondForbidden(c)
		return
	}

	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			respondBadRequest(c, "Missing required field: name")
			return
		}
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Topic != nil {
		group.Topic = *req.Topic
	}
	if req.Rules != nil {
		group.Rules = *req.Rules
	}
	if req.AdultOnly != nil {
		group.AdultOnly = *req.AdultOnly
	}
	if req.Privacy != nil {
		privacy := entities.GroupPrivacy(*req.Privacy)
		if !privacy.Valid() {
			respondBadRequest(c, "Invalid privacy value.")
			return
		}
		group.Privacy = privacy
	}
	if req.EmailCadence != nil {
		cadence := entities.EmailCadence(*req.EmailCadence)
		if !cadence.Valid() {
			respondBadRequest(c, "Invalid email_cadence value.")
			return
		}
		group.EmailCadence = cadence
	}

	if err := gc.groups.Save(group); err != nil {
		respondInternalError(c, err, "update reading group")
		return
	}

	c.JSON(http.StatusOK, group)
}

// Delete deactivates a group; only group admins may do so.
// DELETE /api/reading-group/:id
func (gc *ReadingGroupsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	isAdmin, err := gc.groups.IsGroupAdmin(id, actor.ID)
	if err != nil {
		respondInternalError(c, err, "check group admin")
		return
	}
	if !isAdmin {
		respondForbidden(c)
		return
	}

	if err := gc.groups.SoftDelete(id); err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			respondNotFound(c, "reading group")
			return
		}
		respondInternalError(c, err, "delete reading group")
		return
	}

	c.Status(http.StatusNoContent)
}

type inviteRequest struct {
	UserID uint `json:"user_id"`
}

// Invite creates a pending membership for the given profile and emails
// them a signed acceptance link. Only group admins may invite.
// POST /api/reading-group/:id/group-user-invitation
func (gc *ReadingGroupsController) Invite(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		respondBadRequest(c, "Missing required field: user_id")
		return
	}

	group, err := gc.groups.GetByID(groupID)
	if err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			respondNotFound(c, "reading group")
			return
		}
		respondInternalError(c, err, "load reading group")
		return
	}

	isAdmin, err := gc.groups.IsGroupAdmin(groupID, actor.ID)
	if err != nil {
		respondInternalError(c, err, "check group admin")
		return
	}
	if !isAdmin {
		respondForbidden(c)
		return
	}

	invitee, err := gc.profiles.GetByID(req.UserID)
	if err != nil {
		if errors.Is(err, accounts.ErrProfileNotFound) {
			respondNotFound(c, "user profile")
			return
		}
		respondInternalError(c, err, "load invitee")
		return
	}

	_, created, err := gc.groups.Invite(groupID, invitee.ID, actor.ID)
	if err != nil {
		respondInternalError(c, err, "invite user")
		return
	}

	if created {
		gc.sendInvitationEmail(group, actor, invitee)
	}

	respondWorkflowSuccess(c, "Invitation sent")
}

func (gc *ReadingGroupsController) sendInvitationEmail(group *entities.ReadingGroup, inviter, invitee *entities.UserProfile) {
	token, err := gc.tokenizer.Generate(group.ID, invitee.ID)
	if err != nil {
		log.Printf("Failed to sign invitation token for group %d: %v", group.ID, err)
		return
	}
	acceptURL := fmt.Sprintf(
		"%s/api/reading-group/%d/accept-group-invitation/%s/%s",
		gc.baseURL, group.ID, tokens.EncodeUID(invitee.ID), token,
	)
	body, err := emails.RenderInvitation(emails.InvitationData{
		GroupName:   group.Name,
		InviterName: inviter.FullName,
		AcceptURL:   acceptURL,
	})
	if err != nil {
		log.Printf("Failed to render invitation email for group %d: %v", group.ID, err)
		return
	}
	subject := fmt.Sprintf("You have been invited to join %s", group.Name)
	if err := gc.sender.Send([]string{invitee.Email}, subject, body); err != nil {
		log.Printf("Failed to send invitation email for group %d: %v", group.ID, err)
	}
}

// AcceptWithToken accepts an invitation through the emailed link. The
// encoded uid must belong to the authenticated profile and the token must
// be valid for this group and user.
// PUT /api/reading-group/:id/accept-group-invitation/:uidb64/:token
func (gc *ReadingGroupsController) AcceptWithToken(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	userID, err := tokens.DecodeUID(c.Param("uidb64"))
	if err != nil {
		respondBadRequest(c, "Invalid invitation link.")
		return
	}
	if userID != actor.ID {
		respondForbidden(c)
		return
	}

	if err := gc.tokenizer.Validate(c.Param("token"), groupID, userID); err != nil {
		respondBadRequest(c, "Invalid or expired invitation token.")
		return
	}

	if err := gc.groups.AcceptInvitation(groupID, userID); err != nil {
		switch {
		case errors.Is(err, groups.ErrNotInvited):
			respondBadRequest(c, "User hasn't been invited to be part of this group.")
		case errors.Is(err, groups.ErrUserNotFound), errors.Is(err, groups.ErrGroupNotFound):
			respondBadRequest(c, "Check user and group.")
		default:
			respondInternalError(c, err, "accept invitation")
		}
		return
	}

	respondWorkflowSuccess(c, "Invitation accepted")
}
