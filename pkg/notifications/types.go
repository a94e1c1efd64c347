package notifications

import "strings"

// Type identifies an event and context combination eligible for
// notification. Values are hierarchical, colon-segmented identifiers of the
// form Entity:action[:qualifier...]. The set is closed: every Type the
// router can emit has exactly one template definition in the registry.
type Type string

const (
	TypePostMention        Type = "Post:mention"
	TypePostCommentCreate  Type = "Post:comment:create"
	TypePostCommentMention Type = "Post:comment:mention"

	TypeGroupMemberCreateInvited   Type = "Group:member:create:invited"
	TypeGroupMemberCreateRequested Type = "Group:member:create:requested"

	TypeGroupMemberRequestAccepted   Type = "Group:member:update:request:accepted"
	TypeGroupMemberPromotedModerator Type = "Group:member:update:promoted:moderator"
	TypeGroupMemberPromotedAdmin     Type = "Group:member:update:promoted:admin"

	TypeGroupPostModerationRejected    Type = "Group:post:moderation:rejected"
	TypePostCommentModerationRejected  Type = "Post:comment:moderation:rejected"
)

// Segments returns the colon-separated segments of the type identifier.
func (t Type) Segments() []string {
	return strings.Split(string(t), ":")
}

// Valid reports whether the identifier has at least an entity and an action
// segment, with no empty segments.
func (t Type) Valid() bool {
	segments := t.Segments()
	if len(segments) < 2 {
		return false
	}
	for _, s := range segments {
		if s == "" {
			return false
		}
	}
	return true
}

// Channel is one delivery mechanism for a notification.
type Channel string

const (
	ChannelWeb   Channel = "web"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)
