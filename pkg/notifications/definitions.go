package notifications

// defaultDefinitions is the built-in template set, one entry per
// notification type the router can emit. Compiled once by NewRegistry.
//
// Required context keys are those referenced by the templates; the context
// builders in router.go populate them. Every template renders with
// missingkey=error, so a builder that misses a key fails the dispatch
// loudly instead of sending a half-rendered notification.
var defaultDefinitions = []definitionSpec{
	{
		forType: TypePostMention,
		subject: `{{.ActorName}} mentioned you in a post`,
		body: `<p>{{.ActorName}} mentioned you in a post:</p>
<blockquote>{{.PostIntro}}</blockquote>
<p><a href="{{.BaseURL}}/post/{{.PostID}}">View the post</a>.</p>`,
		text: `{{.ActorName}} mentioned you in a post: "{{.PostIntro}}"`,
		path: `/post/{{.PostID}}`,
	},
	{
		forType: TypePostCommentCreate,
		subject: `{{.ActorName}} commented on a post you follow`,
		body: `<p>{{.ActorName}} commented on "{{.PostIntro}}":</p>
<blockquote>{{.CommentIntro}}</blockquote>
<p><a href="{{.BaseURL}}/post/{{.PostID}}#comment-{{.CommentID}}">View the comment</a>.</p>`,
		text: `{{.ActorName}} commented on "{{.PostIntro}}"`,
		path: `/post/{{.PostID}}#comment-{{.CommentID}}`,
	},
	{
		forType: TypePostCommentMention,
		subject: `{{.ActorName}} mentioned you in a comment`,
		body: `<p>{{.ActorName}} mentioned you in a comment:</p>
<blockquote>{{.CommentIntro}}</blockquote>
<p><a href="{{.BaseURL}}/post/{{.PostID}}#comment-{{.CommentID}}">View the comment</a>.</p>`,
		text: `{{.ActorName}} mentioned you in a comment: "{{.CommentIntro}}"`,
		path: `/post/{{.PostID}}#comment-{{.CommentID}}`,
	},
	{
		forType: TypeGroupMemberCreateInvited,
		subject: `{{.ActorName}} invited you to join {{.GroupName}}`,
		body: `<p>{{.ActorName}} invited you to join the group {{.GroupName}}.</p>
<p><a href="{{.BaseURL}}/group/{{.GroupSlug}}">View the group</a> to accept or decline.</p>`,
		text: `{{.ActorName}} invited you to join {{.GroupName}}`,
		path: `/group/{{.GroupSlug}}`,
	},
	{
		forType: TypeGroupMemberCreateRequested,
		subject: `{{.ActorName}} requested to join {{.GroupName}}`,
		body: `<p>{{.ActorName}} requested to join {{.GroupName}}.</p>
<p><a href="{{.BaseURL}}/group/{{.GroupSlug}}/members">Review the request</a>.</p>`,
		text: `{{.ActorName}} requested to join {{.GroupName}}`,
		path: `/group/{{.GroupSlug}}/members`,
	},
	{
		forType: TypeGroupMemberRequestAccepted,
		subject: `Your request to join {{.GroupName}} was accepted`,
		body: `<p>Your request to join {{.GroupName}} was accepted. Welcome!</p>
<p><a href="{{.BaseURL}}/group/{{.GroupSlug}}">Visit the group</a>.</p>`,
		text: `Your request to join {{.GroupName}} was accepted`,
		path: `/group/{{.GroupSlug}}`,
	},
	{
		forType: TypeGroupMemberPromotedModerator,
		subject: `You've been promoted to moderator of {{.GroupName}}`,
		body: `<p>You've been promoted to moderator of {{.GroupName}}.</p>
<p><a href="{{.BaseURL}}/group/{{.GroupSlug}}">Visit the group</a>.</p>`,
		text: `You've been promoted to moderator of {{.GroupName}}`,
		path: `/group/{{.GroupSlug}}`,
	},
	{
		forType: TypeGroupMemberPromotedAdmin,
		subject: `You've been promoted to admin of {{.GroupName}}`,
		body: `<p>You've been promoted to admin of {{.GroupName}}.</p>
<p><a href="{{.BaseURL}}/group/{{.GroupSlug}}">Visit the group</a>.</p>`,
		text: `You've been promoted to admin of {{.GroupName}}`,
		path: `/group/{{.GroupSlug}}`,
	},
	{
		forType: TypeGroupPostModerationRejected,
		subject: `Your post in {{.GroupName}} was rejected`,
		body: `<p>A moderator of {{.GroupName}} rejected your post "{{.PostIntro}}".</p>
<p>Reason given: {{.Reason}}</p>
<p><a href="{{.BaseURL}}/post/{{.PostID}}">View your post</a>.</p>`,
		text: `Your post "{{.PostIntro}}" was rejected by the moderators of {{.GroupName}}`,
		path: `/post/{{.PostID}}`,
	},
	{
		forType: TypePostCommentModerationRejected,
		subject: `Your comment was rejected by the moderators`,
		body: `<p>A moderator rejected your comment "{{.CommentIntro}}".</p>
<p>Reason given: {{.Reason}}</p>
<p><a href="{{.BaseURL}}/post/{{.PostID}}#comment-{{.CommentID}}">View the post</a>.</p>`,
		text: `Your comment "{{.CommentIntro}}" was rejected by the moderators`,
		path: `/post/{{.PostID}}#comment-{{.CommentID}}`,
	},
}
