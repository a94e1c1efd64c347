package notifications

import "context"

// The engine treats user, post, comment, group and permission data as
// externally supplied collaborators. Lookups return (nil, nil) when the
// entity is absent; errors are reserved for store failures.

// UserStore provides recipient lookup for routing and preference resolution.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	SelectUsersByIDs(ctx context.Context, ids []int64) ([]*User, error)
	SelectUsersByUsernames(ctx context.Context, usernames []string) ([]*User, error)
}

// PostStore provides id-keyed post lookup.
type PostStore interface {
	GetPostByID(ctx context.Context, id int64) (*Post, error)
}

// CommentStore provides id-keyed comment lookup.
type CommentStore interface {
	GetCommentByID(ctx context.Context, id int64) (*Comment, error)
}

// GroupStore provides group lookup and moderator fan-out targets.
type GroupStore interface {
	GetGroupByID(ctx context.Context, id int64) (*Group, error)
	// SelectGroupModerators returns members holding the moderator or admin
	// role in the group.
	SelectGroupModerators(ctx context.Context, groupID int64) ([]*User, error)
}

// SubscriptionStore provides the subscribers of a post.
type SubscriptionStore interface {
	SelectPostSubscribers(ctx context.Context, postID int64) ([]*User, error)
}

// Permissions answers access-control questions during recipient derivation.
// Denial is an answer, not an error: implementations return false and never
// fail for "access denied".
type Permissions interface {
	CanViewPost(ctx context.Context, user *User, post *Post) bool
}
