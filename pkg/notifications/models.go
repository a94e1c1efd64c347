package notifications

import (
	"github.com/danielBingham/communities-notify/pkg/push"
)

// UserStatus is the account lifecycle state of a user.
type UserStatus string

const (
	// UserStatusInvited means the user has been invited but has not
	// confirmed an email address yet. Email delivery is suppressed for
	// invited users regardless of preference.
	UserStatusInvited     UserStatus = "invited"
	UserStatusUnconfirmed UserStatus = "unconfirmed"
	UserStatusConfirmed   UserStatus = "confirmed"
	UserStatusBanned      UserStatus = "banned"
)

// Device is a registered mobile device eligible for push delivery.
type Device struct {
	Token    string        `json:"token"`
	Platform push.Platform `json:"platform"`
}

// Settings is the slice of the user's settings blob the engine reads.
// Absent entries fall back to DefaultPreference.
type Settings struct {
	Notifications map[Type]Preference `json:"notifications,omitempty"`
}

// User is the recipient-side view of a user account.
type User struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Status   UserStatus `json:"status"`
	Settings Settings   `json:"settings"`
	Devices  []Device   `json:"devices,omitempty"`
}

// Post is the subject entity of post-related notifications.
type Post struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"authorId"`
	GroupID  int64  `json:"groupId,omitempty"` // zero when not a group post
	Content  string `json:"content"`
}

// Comment is the subject entity of comment-related notifications.
type Comment struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"postId"`
	AuthorID int64  `json:"authorId"`
	Content  string `json:"content"`
}

// Group is the subject entity of group-related notifications.
type Group struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// GroupMemberStatus is the membership lifecycle state within a group.
type GroupMemberStatus string

const (
	GroupMemberStatusInvited   GroupMemberStatus = "invited"
	GroupMemberStatusRequested GroupMemberStatus = "pending-requested"
	GroupMemberStatusMember    GroupMemberStatus = "member"
)

// GroupMemberRole is a member's role within a group.
type GroupMemberRole string

const (
	GroupMemberRoleMember    GroupMemberRole = "member"
	GroupMemberRoleModerator GroupMemberRole = "moderator"
	GroupMemberRoleAdmin     GroupMemberRole = "admin"
)
