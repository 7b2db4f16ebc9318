package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Visibility controls who may see a profile attribute.
type Visibility string

const (
	VisibilityFriends  Visibility = "F"
	VisibilityEveryone Visibility = "E"
	VisibilityNoOne    Visibility = "No"
)

type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
	GenderX      Gender = "X"
)

// Role ids are fixed; the rows are seeded at startup.
const (
	RoleReader    uint = 1
	RoleLibrarian uint = 2
	RoleStaff     uint = 3
	RoleAdmin     uint = 4
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50" json:"name"`
}

type UserProfile struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string          `gorm:"uniqueIndex;size:254" json:"email"`
	PasswordHash string          `gorm:"size:128" json:"-"`
	FullName     string          `gorm:"size:150" json:"full_name"`
	Birthday     *datatypes.Date `json:"birthday,omitempty"`

	WhoCanSeeLastName Visibility `gorm:"size:2;default:'E'" json:"who_can_see_last_name"`
	Photo             string     `gorm:"size:1024" json:"photo,omitempty"`
	City              string     `gorm:"size:70" json:"city,omitempty"`
	State             string     `gorm:"size:70" json:"state,omitempty"`
	Country           string     `gorm:"size:2" json:"country,omitempty"`
	LocationView      Visibility `gorm:"size:2;default:'E'" json:"location_view"`
	Gender            Gender     `gorm:"size:2" json:"gender,omitempty"`
	GenderView        Visibility `gorm:"size:2;default:'E'" json:"gender_view"`
	AgeView           int        `gorm:"default:1" json:"age_view"`
	WebSite           string     `gorm:"size:200" json:"web_site,omitempty"`
	Interests         string     `gorm:"type:text" json:"interests,omitempty"`
	KindBooks         string     `gorm:"type:text" json:"kind_books,omitempty"`
	AboutMe           string     `gorm:"type:text" json:"about_me,omitempty"`

	// Active is the application-level soft-delete flag; IsActive gates login.
	Active   bool `gorm:"default:true" json:"active"`
	IsActive bool `gorm:"default:true" json:"is_active"`

	Roles   []Role   `gorm:"many2many:user_roles;" json:"roles,omitempty"`
	Shelves []Shelve `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"shelves,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether the profile holds the given role id.
// Roles must be preloaded.
func (p *UserProfile) HasRole(roleID uint) bool {
	for _, role := range p.Roles {
		if role.ID == roleID {
			return true
		}
	}
	return false
}

// EmailSettings holds per-user email notification toggles. Exactly one row
// is created alongside each new profile and never independently.
type EmailSettings struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	CommentReview    bool `gorm:"default:true" json:"comment_review"`
	GroupInvitation  bool `gorm:"default:true" json:"group_invitation"`
	GroupNews        bool `gorm:"default:true" json:"group_news"`
	FriendRequest    bool `gorm:"default:true" json:"friend_request"`
	PrivateMessage   bool `gorm:"default:true" json:"private_message"`
	AuthorNews       bool `gorm:"default:true" json:"author_news"`
	WeeklyDigest     bool `gorm:"default:true" json:"weekly_digest"`
	ReadingReminders bool `gorm:"default:true" json:"reading_reminders"`

	User      UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// FeedSetting holds per-user activity-feed toggles, one row per profile.
type FeedSetting struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	AddBook                 bool `gorm:"default:true" json:"add_book"`
	AddQuote                bool `gorm:"default:true" json:"add_quote"`
	RecommendBook           bool `gorm:"default:true" json:"recommend_book"`
	AddNewStatus            bool `gorm:"default:true" json:"add_new_status"`
	CommentSoReview         bool `gorm:"default:true" json:"comment_so_review"`
	VoteBookReview          bool `gorm:"default:true" json:"vote_book_review"`
	AddFriend               bool `gorm:"default:true" json:"add_friend"`
	CommentBookOrDiscussion bool `gorm:"default:true" json:"comment_book_or_discussion"`
	JoinGroup               bool `gorm:"default:true" json:"join_group"`
	AnswerPoll              bool `gorm:"default:true" json:"answer_poll"`
	EnterGiveaway           bool `gorm:"default:true" json:"enter_giveaway"`
	AskAnswer               bool `gorm:"default:true" json:"ask_answer"`
	FollowAuthor            bool `gorm:"default:true" json:"follow_author"`

	User      UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Shelve struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID uint   `gorm:"index" json:"owner_id"`
	Name    string `gorm:"size:150" json:"name"`

	Owner UserProfile `gorm:"foreignKey:OwnerID" json:"-"`
	Books []Book      `gorm:"many2many:BookShelve;joinForeignKey:ShelveID;joinReferences:BookID" json:"books,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DefaultShelfNames are seeded for every new profile.
var DefaultShelfNames = []string{"read", "to-read", "currently-reading"}

type GroupPrivacy string

const (
	GroupPrivacyPublic  GroupPrivacy = "PU"
	GroupPrivacyPrivate GroupPrivacy = "PR"
	GroupPrivacySecret  GroupPrivacy = "SE"
)

func (p GroupPrivacy) Valid() bool {
	switch p {
	case GroupPrivacyPublic, GroupPrivacyPrivate, GroupPrivacySecret:
		return true
	}
	return false
}

type EmailCadence string

const (
	EmailCadenceDaily   EmailCadence = "D"
	EmailCadenceWeekly  EmailCadence = "W"
	EmailCadenceMonthly EmailCadence = "M"
	EmailCadenceNever   EmailCadence = "N"
)

func (c EmailCadence) Valid() bool {
	switch c {
	case EmailCadenceDaily, EmailCadenceWeekly, EmailCadenceMonthly, EmailCadenceNever:
		return true
	}
	return false
}

type ReadingGroup struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CreatorID uint   `gorm:"index" json:"creator_id"`
	Name      string `gorm:"size:150" json:"name"`

	Description  string       `gorm:"type:text" json:"description,omitempty"`
	Privacy      GroupPrivacy `gorm:"size:2;default:'PU'" json:"privacy"`
	Topic        string       `gorm:"size:150" json:"topic,omitempty"`
	Rules        string       `gorm:"type:text" json:"rules,omitempty"`
	AdultOnly    bool         `gorm:"default:false" json:"adult_only"`
	EmailCadence EmailCadence `gorm:"size:2;default:'W'" json:"email_cadence"`
	Active       bool         `gorm:"default:true" json:"active"`

	Creator UserProfile `gorm:"foreignKey:CreatorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingGroupUsers records membership and invitation state. A row starts as
// an invitation (active=false, invitation_answered=false) and becomes a
// membership once accepted (both true). The creator's row is created active.
type ReadingGroupUsers struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	UserID       uint `gorm:"index:idx_group_member,priority:2" json:"user_id"`
	GroupID      uint `gorm:"index:idx_group_member,priority:1" json:"group_id"`
	WhoInvitesID uint `json:"who_invites_id"`

	Active             bool `gorm:"default:false" json:"active"`
	InvitationAnswered bool `gorm:"default:false" json:"invitation_answered"`
	IsAdmin            bool `gorm:"default:false" json:"is_admin"`

	User       UserProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Group      ReadingGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	WhoInvites UserProfile  `gorm:"foreignKey:WhoInvitesID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReadingGroupEmailSetting struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	GroupID uint `gorm:"index" json:"group_id"`
	UserID  uint `gorm:"index" json:"user_id"`

	Announcements bool `gorm:"default:true" json:"announcements"`
	Digest        bool `gorm:"default:true" json:"digest"`

	Group     ReadingGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	User      UserProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Role) TableName() string {
	return "Role"
}

func (UserProfile) TableName() string {
	return "UserProfile"
}

func (EmailSettings) TableName() string {
	return "EmailSetting"
}

func (FeedSetting) TableName() string {
	return "FeedSetting"
}

func (Shelve) TableName() string {
	return "Shelve"
}

func (ReadingGroup) TableName() string {
	return "ReadingGroup"
}

func (ReadingGroupUsers) TableName() string {
	return "ReadingGroupUsers"
}

func (ReadingGroupEmailSetting) TableName() string {
	return "ReadingGroupEmailSetting"
}
