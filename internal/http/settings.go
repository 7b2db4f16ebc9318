package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meninleo/goodreads/internal/database/accounts"
)

// SettingsController updates email and feed notification preferences
// addressed by settings row id.
type SettingsController struct {
	profiles *accounts.Repository
}

func NewSettingsController(profiles *accounts.Repository) *SettingsController {
	return &SettingsController{profiles: profiles}
}

type emailSettingsRequest struct {
	CommentReview    *bool `json:"comment_review"`
	GroupInvitation  *bool `json:"group_invitation"`
	GroupNews        *bool `json:"group_news"`
	FriendRequest    *bool `json:"friend_request"`
	PrivateMessage   *bool `json:"private_message"`
	AuthorNews       *bool `json:"author_news"`
	WeeklyDigest     *bool `json:"weekly_digest"`
	ReadingReminders *bool `json:"reading_reminders"`
}

// UpdateEmailSettings toggles email notification preferences; owner only.
// PUT /api/email-setting/:id
func (sc *SettingsController) UpdateEmailSettings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	settings, err := sc.profiles.EmailSettingsByID(id)
	if err != nil {
		if errors.Is(err, accounts.ErrSettingsNotFound) {
			respondNotFound(c, "email settings")
			return
		}
		respondInternalError(c, err, "load email settings")
		return
	}
	if settings.UserID != actor.ID {
		respondForbidden(c)
		return
	}

	var req emailSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	applyBool(&settings.CommentReview, req.CommentReview)
	applyBool(&settings.GroupInvitation, req.GroupInvitation)
	applyBool(&settings.GroupNews, req.GroupNews)
	applyBool(&settings.FriendRequest, req.FriendRequest)
	applyBool(&settings.PrivateMessage, req.PrivateMessage)
	applyBool(&settings.AuthorNews, req.AuthorNews)
	applyBool(&settings.WeeklyDigest, req.WeeklyDigest)
	applyBool(&settings.ReadingReminders, req.ReadingReminders)

	if err := sc.profiles.SaveEmailSettings(settings); err != nil {
		respondInternalError(c, err, "update email settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

type feedSettingRequest struct {
	AddBook                 *bool `json:"add_book"`
	AddQuote                *bool `json:"add_quote"`
	RecommendBook           *bool `json:"recommend_book"`
	AddNewStatus            *bool `json:"add_new_status"`
	CommentSoReview         *bool `json:"comment_so_review"`
	VoteBookReview          *bool `json:"vote_book_review"`
	AddFriend               *bool `json:"add_friend"`
	CommentBookOrDiscussion *bool `json:"comment_book_or_discussion"`
	JoinGroup               *bool `json:"join_group"`
	AnswerPoll              *bool `json:"answer_poll"`
	EnterGiveaway           *bool `json:"enter_giveaway"`
	AskAnswer               *bool `json:"ask_answer"`
	FollowAuthor            *bool `json:"follow_author"`
}

// UpdateFeedSetting toggles activity-feed preferences; owner only.
// PUT /api/feed-setting/:id
func (sc *SettingsController) UpdateFeedSetting(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	settings, err := sc.profiles.FeedSettingByID(id)
	if err != nil {
		if errors.Is(err, accounts.ErrSettingsNotFound) {
			respondNotFound(c, "feed settings")
			return
		}
		respondInternalError(c, err, "load feed settings")
		return
	}
	if settings.UserID != actor.ID {
		respondForbidden(c)
		return
	}

	var req feedSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	applyBool(&settings.AddBook, req.AddBook)
	applyBool(&settings.AddQuote, req.AddQuote)
	applyBool(&settings.RecommendBook, req.RecommendBook)
	applyBool(&settings.AddNewStatus, req.AddNewStatus)
	applyBool(&settings.CommentSoReview, req.CommentSoReview)
	applyBool(&settings.VoteBookReview, req.VoteBookReview)
	applyBool(&settings.AddFriend, req.AddFriend)
	applyBool(&settings.CommentBookOrDiscussion, req.CommentBookOrDiscussion)
	applyBool(&settings.JoinGroup, req.JoinGroup)
	applyBool(&settings.AnswerPoll, req.AnswerPoll)
	applyBool(&settings.EnterGiveaway, req.EnterGiveaway)
	applyBool(&settings.AskAnswer, req.AskAnswer)
	applyBool(&settings.FollowAuthor, req.FollowAuthor)

	if err := sc.profiles.SaveFeedSetting(settings); err != nil {
		respondInternalError(c, err, "update feed setting")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
