package notifications_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielBingham/communities-notify/pkg/notifications"
)

// routableTypes is the full set of types the router can emit.
var routableTypes = []notifications.Type{
	notifications.TypePostMention,
	notifications.TypePostCommentCreate,
	notifications.TypePostCommentMention,
	notifications.TypeGroupMemberCreateInvited,
	notifications.TypeGroupMemberCreateRequested,
	notifications.TypeGroupMemberRequestAccepted,
	notifications.TypeGroupMemberPromotedModerator,
	notifications.TypeGroupMemberPromotedAdmin,
	notifications.TypeGroupPostModerationRejected,
	notifications.TypePostCommentModerationRejected,
}

func fullContext() notifications.Context {
	return notifications.Context{
		"ActorName":    "Ada Lovelace",
		"PostID":       int64(42),
		"PostIntro":    "An analytical engine update",
		"CommentID":    int64(7),
		"CommentIntro": "Very interesting point",
		"GroupName":    "Engine Enthusiasts",
		"GroupSlug":    "engine-enthusiasts",
		"Reason":       "off topic",
		"BaseURL":      "https://communities.social",
	}
}

func TestRegistry_CoversAllRoutableTypes(t *testing.T) {
	t.Parallel()

	registry := notifications.MustNewRegistry()

	for _, typ := range routableTypes {
		t.Run(string(typ), func(t *testing.T) {
			t.Parallel()

			def, err := registry.Resolve(typ)
			require.NoError(t, err)
			require.NotNil(t, def)
			assert.Equal(t, typ, def.Type)

			subject, err := def.Subject(fullContext())
			require.NoError(t, err)
			assert.NotEmpty(t, subject)

			body, err := def.Body(fullContext())
			require.NoError(t, err)
			assert.NotEmpty(t, body)

			text, err := def.Text(fullContext())
			require.NoError(t, err)
			assert.NotEmpty(t, text)

			path, err := def.Path(fullContext())
			require.NoError(t, err)
			assert.NotEmpty(t, path)
		})
	}

	assert.Len(t, registry.Types(), len(routableTypes))
}

func TestRegistry_ResolveUnknownType(t *testing.T) {
	t.Parallel()

	registry := notifications.MustNewRegistry()

	def, err := registry.Resolve(notifications.Type("Post:unknown"))
	require.ErrorIs(t, err, notifications.ErrMissingDefinition)
	assert.Nil(t, def)
}

func TestDefinition_RenderingIsPure(t *testing.T) {
	t.Parallel()

	registry := notifications.MustNewRegistry()
	def, err := registry.Resolve(notifications.TypePostMention)
	require.NoError(t, err)

	first, err := def.Text(fullContext())
	require.NoError(t, err)
	second, err := def.Text(fullContext())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	subject, err := def.Subject(fullContext())
	require.NoError(t, err)
	assert.Contains(t, subject, "Ada Lovelace")
}

func TestDefinition_MissingContextKeyFailsRender(t *testing.T) {
	t.Parallel()

	registry := notifications.MustNewRegistry()
	def, err := registry.Resolve(notifications.TypePostMention)
	require.NoError(t, err)

	_, err = def.Text(notifications.Context{})
	assert.Error(t, err)
}

func TestType_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ   notifications.Type
		valid bool
	}{
		{notifications.TypePostMention, true},
		{notifications.TypeGroupMemberPromotedAdmin, true},
		{notifications.Type("Post"), false},
		{notifications.Type("Post::mention"), false},
		{notifications.Type(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, tt.typ.Valid())
		})
	}
}
