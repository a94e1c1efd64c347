package notifications

import (
	"context"
	"fmt"
)

// Options carries caller-controlled suppression flags for one dispatch,
// e.g. to avoid emailing a user who is themselves the actor.
type Options struct {
	NoWeb   bool `json:"noWeb,omitempty"`
	NoEmail bool `json:"noEmail,omitempty"`
}

// Instruction is a fully resolved (recipient, type, context, options) tuple
// ready for channel fan-out.
type Instruction struct {
	RecipientID int64
	Type        Type
	Context     Context
	Options     Options
}

// Event is a domain event the router can translate into dispatch
// instructions. The set of event families is closed.
type Event interface {
	eventName() string
}

// MentionEvent fires when a post or comment mentions users by @username.
// CommentID is zero for a post mention.
type MentionEvent struct {
	ActorID   int64
	PostID    int64
	CommentID int64
}

func (MentionEvent) eventName() string { return "mention" }

// CommentCreatedEvent fires when a comment is added to a post.
type CommentCreatedEvent struct {
	ActorID   int64
	PostID    int64
	CommentID int64
}

func (CommentCreatedEvent) eventName() string { return "comment:created" }

// GroupMemberCreatedEvent fires when a group membership record is created,
// either by invitation or by a join request.
type GroupMemberCreatedEvent struct {
	ActorID int64
	GroupID int64
	UserID  int64
	Status  GroupMemberStatus
}

func (GroupMemberCreatedEvent) eventName() string { return "group:member:created" }

// GroupMemberUpdatedEvent fires when a group membership changes status or
// role. The transition pair selects the notification type; an unmatched
// pair emits nothing.
type GroupMemberUpdatedEvent struct {
	ActorID        int64
	GroupID        int64
	UserID         int64
	PreviousStatus GroupMemberStatus
	Status         GroupMemberStatus
	PreviousRole   GroupMemberRole
	Role           GroupMemberRole
}

func (GroupMemberUpdatedEvent) eventName() string { return "group:member:updated" }

// PostModerationRejectedEvent fires when a group moderator rejects a post.
type PostModerationRejectedEvent struct {
	ModeratorID int64
	PostID      int64
	Reason      string
}

func (PostModerationRejectedEvent) eventName() string { return "post:moderation:rejected" }

// CommentModerationRejectedEvent fires when a moderator rejects a comment.
type CommentModerationRejectedEvent struct {
	ModeratorID int64
	CommentID   int64
	Reason      string
}

func (CommentModerationRejectedEvent) eventName() string { return "comment:moderation:rejected" }

// Router maps domain events to dispatch instructions, owning all business
// rules for who should be notified. Recipients who fail the eligibility
// check are silently skipped; content can become private between authoring
// and send, and that is expected rather than exceptional.
type Router struct {
	users         UserStore
	posts         PostStore
	comments      CommentStore
	groups        GroupStore
	subscriptions SubscriptionStore
	perms         Permissions
	baseURL       string
}

// RouterDeps bundles the collaborator stores the router needs.
type RouterDeps struct {
	Users         UserStore
	Posts         PostStore
	Comments      CommentStore
	Groups        GroupStore
	Subscriptions SubscriptionStore
	Permissions   Permissions
}

// NewRouter creates an event router. baseURL is the public origin used in
// email links, e.g. "https://communities.social".
func NewRouter(deps RouterDeps, baseURL string) *Router {
	return &Router{
		users:         deps.Users,
		posts:         deps.Posts,
		comments:      deps.Comments,
		groups:        deps.Groups,
		subscriptions: deps.Subscriptions,
		perms:         deps.Permissions,
		baseURL:       baseURL,
	}
}

// Route translates one domain event into zero or more dispatch
// instructions. Events missing required identifiers fail fast with
// ErrMissingContext; that is a caller bug, not a business-rule absence.
func (r *Router) Route(ctx context.Context, event Event, opts Options) ([]Instruction, error) {
	switch ev := event.(type) {
	case MentionEvent:
		return r.routeMention(ctx, ev, opts)
	case CommentCreatedEvent:
		return r.routeCommentCreated(ctx, ev, opts)
	case GroupMemberCreatedEvent:
		return r.routeGroupMemberCreated(ctx, ev, opts)
	case GroupMemberUpdatedEvent:
		return r.routeGroupMemberUpdated(ctx, ev, opts)
	case PostModerationRejectedEvent:
		return r.routePostModerationRejected(ctx, ev, opts)
	case CommentModerationRejectedEvent:
		return r.routeCommentModerationRejected(ctx, ev, opts)
	default:
		return nil, fmt.Errorf("unhandled event type %T", event)
	}
}

// eligible is the single recipient-eligibility predicate used by every
// event family: the candidate must exist, must not be banned, and must be
// able to view the subject post right now.
func (r *Router) eligible(ctx context.Context, user *User, post *Post) bool {
	if user == nil || user.Status == UserStatusBanned {
		return false
	}
	return r.perms.CanViewPost(ctx, user, post)
}

func (r *Router) routeMention(ctx context.Context, ev MentionEvent, opts Options) ([]Instruction, error) {
	if ev.ActorID == 0 || ev.PostID == 0 {
		return nil, fmt.Errorf("%w: mention event requires actor and post ids", ErrMissingContext)
	}

	actor, err := r.users.GetUserByID(ctx, ev.ActorID)
	if err != nil {
		return nil, fmt.Errorf("look up actor %d: %w", ev.ActorID, err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: actor %d", ErrRecipientNotFound, ev.ActorID)
	}

	post, err := r.posts.GetPostByID(ctx, ev.PostID)
	if err != nil {
		return nil, fmt.Errorf("look up post %d: %w", ev.PostID, err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", ev.PostID)
	}

	notifType := TypePostMention
	content := post.Content
	var comment *Comment
	if ev.CommentID != 0 {
		comment, err = r.comments.GetCommentByID(ctx, ev.CommentID)
		if err != nil {
			return nil, fmt.Errorf("look up comment %d: %w", ev.CommentID, err)
		}
		if comment == nil {
			return nil, fmt.Errorf("comment %d not found", ev.CommentID)
		}
		notifType = TypePostCommentMention
		content = comment.Content
	}

	usernames := ExtractMentions(content)
	if len(usernames) == 0 {
		return nil, nil
	}

	mentioned, err := r.users.SelectUsersByUsernames(ctx, usernames)
	if err != nil {
		return nil, fmt.Errorf("resolve mentioned usernames: %w", err)
	}

	var instructions []Instruction
	for _, user := range mentioned {
		if user.ID == actor.ID {
			continue
		}
		// Unresolvable or ineligible mentions are skipped, not errors:
		// typos happen and access can be revoked between authoring and
		// send.
		if !r.eligible(ctx, user, post) {
			continue
		}
		instructions = append(instructions, Instruction{
			RecipientID: user.ID,
			Type:        notifType,
			Context:     r.buildMentionContext(actor, post, comment),
			Options:     opts,
		})
	}
	return instructions, nil
}

func (r *Router) routeCommentCreated(ctx context.Context, ev CommentCreatedEvent, opts Options) ([]Instruction, error) {
	if ev.ActorID == 0 || ev.PostID == 0 || ev.CommentID == 0 {
		return nil, fmt.Errorf("%w: comment event requires actor, post and comment ids", ErrMissingContext)
	}

	actor, err := r.users.GetUserByID(ctx, ev.ActorID)
	if err != nil {
		return nil, fmt.Errorf("look up actor %d: %w", ev.ActorID, err)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: actor %d", ErrRecipientNotFound, ev.ActorID)
	}

	post, err := r.posts.GetPostByID(ctx, ev.PostID)
	if err != nil {
		return nil, fmt.Errorf("look up post %d: %w", ev.PostID, err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", ev.PostID)
	}

	comment, err := r.comments.GetCommentByID(ctx, ev.CommentID)
	if err != nil {
		return nil, fmt.Errorf("look up comment %d: %w", ev.CommentID, err)
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %d not found", ev.CommentID)
	}

	subscribers, err := r.subscriptions.SelectPostSubscribers(ctx, ev.PostID)
	if err != nil {
		return nil, fmt.Errorf("look up subscribers of post %d: %w", ev.PostID, err)
	}

	// Mentioned users receive the mention notification instead; skipping
	// them here is the router-level dedup the engine deliberately does not
	// provide.
	mentioned := make(map[string]struct{})
	for _, username := range ExtractMentions(comment.Content) {
		mentioned[username] = struct{}{}
	}

	candidates := make([]*User, 0, len(subscribers)+1)
	if post.AuthorID != 0 && post.AuthorID != actor.ID {
		author, err := r.users.GetUserByID(ctx, post.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("look up post author %d: %w", post.AuthorID, err)
		}
		if author != nil {
			candidates = append(candidates, author)
		}
	}
	candidates = append(candidates, subscribers...)

	seen := make(map[int64]struct{}, len(candidates))
	var instructions []Instruction
	for _, user := range candidates {
		if user == nil || user.ID == actor.ID {
			continue
		}
		if _, done := seen[user.ID]; done {
			continue
		}
		seen[user.ID] = struct{}{}

		if _, isMentioned := mentioned[user.Username]; isMentioned {
			continue
		}
		if !r.eligible(ctx, user, post) {
			continue
		}
		instructions = append(instructions, Instruction{
			RecipientID: user.ID,
			Type:        TypePostCommentCreate,
			Context:     r.buildCommentContext(actor, post, comment),
			Options:     opts,
		})
	}
	return instructions, nil
}

func (r *Router) routeGroupMemberCreated(ctx context.Context, ev GroupMemberCreatedEvent, opts Options) ([]Instruction, error) {
	if ev.ActorID == 0 || ev.GroupID == 0 || ev.UserID == 0 {
		return nil, fmt.Errorf("%w: group member event requires actor, group and user ids", ErrMissingContext)
	}

	actor, group, err := r.actorAndGroup(ctx, ev.ActorID, ev.GroupID)
	if err != nil {
		return nil, err
	}

	switch ev.Status {
	case GroupMemberStatusInvited:
		// Exactly one notification, to the invitee.
		return []Instruction{{
			RecipientID: ev.UserID,
			Type:        TypeGroupMemberCreateInvited,
			Context:     r.buildGroupContext(actor, group),
			Options:     opts,
		}}, nil

	case GroupMemberStatusRequested:
		// One notification per moderator or admin of the group.
		requester, err := r.users.GetUserByID(ctx, ev.UserID)
		if err != nil {
			return nil, fmt.Errorf("look up requester %d: %w", ev.UserID, err)
		}
		if requester == nil {
			return nil, fmt.Errorf("%w: user %d", ErrRecipientNotFound, ev.UserID)
		}

		moderators, err := r.groups.SelectGroupModerators(ctx, ev.GroupID)
		if err != nil {
			return nil, fmt.Errorf("look up moderators of group %d: %w", ev.GroupID, err)
		}

		var instructions []Instruction
		for _, moderator := range moderators {
			if moderator == nil || moderator.ID == requester.ID {
				continue
			}
			instructions = append(instructions, Instruction{
				RecipientID: moderator.ID,
				Type:        TypeGroupMemberCreateRequested,
				Context:     r.buildGroupContext(requester, group),
				Options:     opts,
			})
		}
		return instructions, nil

	default:
		// A direct member add carries no notification.
		return nil, nil
	}
}

func (r *Router) routeGroupMemberUpdated(ctx context.Context, ev GroupMemberUpdatedEvent, opts Options) ([]Instruction, error) {
	if ev.ActorID == 0 || ev.GroupID == 0 || ev.UserID == 0 {
		return nil, fmt.Errorf("%w: group member event requires actor, group and user ids", ErrMissingContext)
	}

	notifType, matched := memberUpdateType(ev)
	if !matched {
		// An unmatched transition pair is not an error; most membership
		// updates carry no notification.
		return nil, nil
	}

	actor, group, err := r.actorAndGroup(ctx, ev.ActorID, ev.GroupID)
	if err != nil {
		return nil, err
	}

	return []Instruction{{
		RecipientID: ev.UserID,
		Type:        notifType,
		Context:     r.buildGroupContext(actor, group),
		Options:     opts,
	}}, nil
}

// memberUpdateType selects the notification type for a membership
// transition. Status transitions take precedence over role transitions; at
// most one notification results from any update.
func memberUpdateType(ev GroupMemberUpdatedEvent) (Type, bool) {
	if ev.PreviousStatus == GroupMemberStatusRequested && ev.Status == GroupMemberStatusMember {
		return TypeGroupMemberRequestAccepted, true
	}
	if ev.PreviousRole != ev.Role {
		switch ev.Role {
		case GroupMemberRoleModerator:
			return TypeGroupMemberPromotedModerator, true
		case GroupMemberRoleAdmin:
			return TypeGroupMemberPromotedAdmin, true
		}
	}
	return "", false
}

func (r *Router) routePostModerationRejected(ctx context.Context, ev PostModerationRejectedEvent, opts Options) ([]Instruction, error) {
	if ev.PostID == 0 {
		return nil, fmt.Errorf("%w: moderation event requires a post id", ErrMissingContext)
	}
	if ev.ModeratorID == 0 {
		return nil, fmt.Errorf("%w: moderation event requires a moderator id", ErrMissingContext)
	}

	post, err := r.posts.GetPostByID(ctx, ev.PostID)
	if err != nil {
		return nil, fmt.Errorf("look up post %d: %w", ev.PostID, err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", ev.PostID)
	}

	group, err := r.groups.GetGroupByID(ctx, post.GroupID)
	if err != nil {
		return nil, fmt.Errorf("look up group %d: %w", post.GroupID, err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %d not found", post.GroupID)
	}

	author, err := r.users.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("look up post author %d: %w", post.AuthorID, err)
	}
	// If the author lost access to the post in the meantime, suppress the
	// notification entirely.
	if !r.eligible(ctx, author, post) {
		return nil, nil
	}

	return []Instruction{{
		RecipientID: author.ID,
		Type:        TypeGroupPostModerationRejected,
		Context:     r.buildPostModerationContext(group, post, ev.Reason),
		Options:     opts,
	}}, nil
}

func (r *Router) routeCommentModerationRejected(ctx context.Context, ev CommentModerationRejectedEvent, opts Options) ([]Instruction, error) {
	if ev.CommentID == 0 {
		return nil, fmt.Errorf("%w: moderation event requires a comment id", ErrMissingContext)
	}
	if ev.ModeratorID == 0 {
		return nil, fmt.Errorf("%w: moderation event requires a moderator id", ErrMissingContext)
	}

	comment, err := r.comments.GetCommentByID(ctx, ev.CommentID)
	if err != nil {
		return nil, fmt.Errorf("look up comment %d: %w", ev.CommentID, err)
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %d not found", ev.CommentID)
	}

	post, err := r.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return nil, fmt.Errorf("look up post %d: %w", comment.PostID, err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", comment.PostID)
	}

	author, err := r.users.GetUserByID(ctx, comment.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("look up comment author %d: %w", comment.AuthorID, err)
	}
	if !r.eligible(ctx, author, post) {
		return nil, nil
	}

	return []Instruction{{
		RecipientID: author.ID,
		Type:        TypePostCommentModerationRejected,
		Context:     r.buildCommentModerationContext(post, comment, ev.Reason),
		Options:     opts,
	}}, nil
}

func (r *Router) actorAndGroup(ctx context.Context, actorID, groupID int64) (*User, *Group, error) {
	actor, err := r.users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("look up actor %d: %w", actorID, err)
	}
	if actor == nil {
		return nil, nil, fmt.Errorf("%w: actor %d", ErrRecipientNotFound, actorID)
	}

	group, err := r.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("look up group %d: %w", groupID, err)
	}
	if group == nil {
		return nil, nil, fmt.Errorf("group %d not found", groupID)
	}

	return actor, group, nil
}

// Context builders. Each builds a fresh, fully populated Context for one
// event family; nothing mutates a context after it is built.

func (r *Router) buildMentionContext(actor *User, post *Post, comment *Comment) Context {
	c := Context{
		"ActorName": actor.Name,
		"PostID":    post.ID,
		"PostIntro": Preview(post.Content),
		"BaseURL":   r.baseURL,
	}
	if comment != nil {
		c["CommentID"] = comment.ID
		c["CommentIntro"] = Preview(comment.Content)
	}
	return c
}

func (r *Router) buildCommentContext(actor *User, post *Post, comment *Comment) Context {
	return Context{
		"ActorName":    actor.Name,
		"PostID":       post.ID,
		"PostIntro":    Preview(post.Content),
		"CommentID":    comment.ID,
		"CommentIntro": Preview(comment.Content),
		"BaseURL":      r.baseURL,
	}
}

func (r *Router) buildGroupContext(actor *User, group *Group) Context {
	return Context{
		"ActorName": actor.Name,
		"GroupName": group.Title,
		"GroupSlug": group.Slug,
		"BaseURL":   r.baseURL,
	}
}

func (r *Router) buildPostModerationContext(group *Group, post *Post, reason string) Context {
	if reason == "" {
		reason = "none"
	}
	return Context{
		"GroupName": group.Title,
		"GroupSlug": group.Slug,
		"PostID":    post.ID,
		"PostIntro": Preview(post.Content),
		"Reason":    reason,
		"BaseURL":   r.baseURL,
	}
}

func (r *Router) buildCommentModerationContext(post *Post, comment *Comment, reason string) Context {
	if reason == "" {
		reason = "none"
	}
	return Context{
		"PostID":       post.ID,
		"CommentID":    comment.ID,
		"CommentIntro": Preview(comment.Content),
		"Reason":       reason,
		"BaseURL":      r.baseURL,
	}
}
