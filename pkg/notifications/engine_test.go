package notifications_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielBingham/communities-notify/pkg/email"
	"github.com/danielBingham/communities-notify/pkg/notifications"
	"github.com/danielBingham/communities-notify/pkg/push"
)

type engineFixture struct {
	users   *memUserStore
	storage *notifications.MemoryStorage
	mailer  *fakeMailer
	engine  *notifications.Engine
}

func newEngineFixture(opts ...notifications.EngineOption) *engineFixture {
	f := &engineFixture{
		users:   newMemUserStore(),
		storage: notifications.NewMemoryStorage(),
		mailer:  &fakeMailer{},
	}
	f.engine = notifications.NewEngine(
		notifications.MustNewRegistry(),
		notifications.NewPreferenceResolver(f.users),
		f.storage,
		f.mailer,
		opts...,
	)
	return f
}

func mentionInstruction(recipientID int64) notifications.Instruction {
	return notifications.Instruction{
		RecipientID: recipientID,
		Type:        notifications.TypePostMention,
		Context: notifications.Context{
			"ActorName": "actor",
			"PostID":    int64(10),
			"PostIntro": "a post",
			"BaseURL":   testBaseURL,
		},
	}
}

func TestEngine_Dispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("delivers web and email", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))

		records, err := f.storage.List(ctx, 1, notifications.ListOptions{})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, notifications.TypePostMention, records[0].Type)
		assert.Equal(t, "/post/10", records[0].Path)
		assert.False(t, records[0].Read)

		require.Equal(t, 1, f.mailer.sentCount())
		assert.Equal(t, "ada@example.com", f.mailer.sent[0].SendTo)
		assert.Equal(t, string(notifications.TypePostMention), f.mailer.sent[0].Tag)
		assert.Contains(t, f.mailer.sent[0].Subject, "actor")
	})

	t.Run("web record exists before the email leaves", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")

		var recordsAtSend int
		f.mailer.onSend = func(email.SendEmailParams) {
			count, err := f.storage.CountUnread(ctx, 1)
			require.NoError(t, err)
			recordsAtSend = count
		}

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))
		assert.Equal(t, 1, recordsAtSend)
	})

	t.Run("email failure keeps the web record and tags the channel", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")
		f.mailer.err = errors.New("smtp unreachable")

		err := f.engine.Dispatch(ctx, mentionInstruction(1))
		require.ErrorIs(t, err, notifications.ErrDeliveryFailed)

		var deliveryErr *notifications.DeliveryError
		require.ErrorAs(t, err, &deliveryErr)
		assert.Equal(t, notifications.ChannelEmail, deliveryErr.Channel)

		count, countErr := f.storage.CountUnread(ctx, 1)
		require.NoError(t, countErr)
		assert.Equal(t, 1, count)
	})

	t.Run("invited users never receive email", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		invited := confirmedUser(1, "ada")
		invited.Status = notifications.UserStatusInvited
		f.users.users[1] = invited

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 0, f.mailer.sentCount())
	})

	t.Run("users without an email address receive no email", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		user := confirmedUser(1, "ada")
		user.Email = ""
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))
		assert.Equal(t, 0, f.mailer.sentCount())
	})

	t.Run("email preference off suppresses email only", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		user := confirmedUser(1, "ada")
		user.Settings.Notifications = map[notifications.Type]notifications.Preference{
			notifications.TypePostMention: {Web: true, Email: false},
		}
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 0, f.mailer.sentCount())
	})

	t.Run("web preference off suppresses the record", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		user := confirmedUser(1, "ada")
		user.Settings.Notifications = map[notifications.Type]notifications.Preference{
			notifications.TypePostMention: {Web: false, Email: true},
		}
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, 1, f.mailer.sentCount())
	})

	t.Run("NoEmail option overrides an enabled preference", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")

		inst := mentionInstruction(1)
		inst.Options.NoEmail = true
		require.NoError(t, f.engine.Dispatch(ctx, inst))

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 0, f.mailer.sentCount())
	})

	t.Run("NoWeb option overrides an enabled preference", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")

		inst := mentionInstruction(1)
		inst.Options.NoWeb = true
		require.NoError(t, f.engine.Dispatch(ctx, inst))

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, 1, f.mailer.sentCount())
	})

	t.Run("unknown type aborts before any channel", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")

		inst := mentionInstruction(1)
		inst.Type = notifications.Type("Post:unknown")
		err := f.engine.Dispatch(ctx, inst)
		require.ErrorIs(t, err, notifications.ErrMissingDefinition)

		count, countErr := f.storage.CountUnread(ctx, 1)
		require.NoError(t, countErr)
		assert.Equal(t, 0, count)
		assert.Equal(t, 0, f.mailer.sentCount())
	})

	t.Run("incomplete context aborts before any channel", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")

		inst := mentionInstruction(1)
		delete(inst.Context, "PostIntro")
		require.Error(t, f.engine.Dispatch(ctx, inst))

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, 0, f.mailer.sentCount())
	})

	t.Run("unknown recipient fails the dispatch", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()

		err := f.engine.Dispatch(ctx, mentionInstruction(999))
		assert.ErrorIs(t, err, notifications.ErrRecipientNotFound)
	})
}

func TestEngine_Push(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("delivers to each registered device", func(t *testing.T) {
		t.Parallel()

		ios := &fakePushSender{platform: push.PlatformIOS}
		android := &fakePushSender{platform: push.PlatformAndroid}
		f := newEngineFixture(notifications.WithPushSenders(ios, android))

		user := confirmedUser(1, "ada")
		user.Devices = []notifications.Device{
			{Token: "ios-token", Platform: push.PlatformIOS},
			{Token: "android-token", Platform: push.PlatformAndroid},
		}
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))
		f.engine.Wait()

		assert.Equal(t, []string{"ios-token"}, ios.sentTokens())
		assert.Equal(t, []string{"android-token"}, android.sentTokens())
		require.Len(t, ios.payloads, 1)
		assert.Equal(t, "/post/10", ios.payloads[0].Data["path"])
	})

	t.Run("push failure never fails the dispatch", func(t *testing.T) {
		t.Parallel()

		ios := &fakePushSender{platform: push.PlatformIOS, err: errors.New("apns down")}
		f := newEngineFixture(notifications.WithPushSenders(ios))

		user := confirmedUser(1, "ada")
		user.Devices = []notifications.Device{{Token: "ios-token", Platform: push.PlatformIOS}}
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))
		f.engine.Wait()

		count, err := f.storage.CountUnread(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 1, f.mailer.sentCount())
	})

	t.Run("devices without a registered sender are skipped", func(t *testing.T) {
		t.Parallel()

		ios := &fakePushSender{platform: push.PlatformIOS}
		f := newEngineFixture(notifications.WithPushSenders(ios))

		user := confirmedUser(1, "ada")
		user.Devices = []notifications.Device{{Token: "android-token", Platform: push.PlatformAndroid}}
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))
		f.engine.Wait()

		assert.Empty(t, ios.sentTokens())
	})

	t.Run("push preference off skips devices", func(t *testing.T) {
		t.Parallel()

		ios := &fakePushSender{platform: push.PlatformIOS}
		f := newEngineFixture(notifications.WithPushSenders(ios))

		user := confirmedUser(1, "ada")
		user.Devices = []notifications.Device{{Token: "ios-token", Platform: push.PlatformIOS}}
		user.Settings.Notifications = map[notifications.Type]notifications.Preference{
			notifications.TypePostMention: {Web: true, Email: true, Push: false},
		}
		f.users.users[1] = user

		require.NoError(t, f.engine.Dispatch(ctx, mentionInstruction(1)))
		f.engine.Wait()

		assert.Empty(t, ios.sentTokens())
	})
}

func TestEngine_DispatchAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("one failing recipient does not abort the rest", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		f.users.users[1] = confirmedUser(1, "ada")
		f.users.users[3] = confirmedUser(3, "grace")

		err := f.engine.DispatchAll(ctx, []notifications.Instruction{
			mentionInstruction(1),
			mentionInstruction(2), // unknown recipient
			mentionInstruction(3),
		})
		require.ErrorIs(t, err, notifications.ErrRecipientNotFound)

		for _, userID := range []int64{1, 3} {
			count, countErr := f.storage.CountUnread(ctx, userID)
			require.NoError(t, countErr)
			assert.Equal(t, 1, count)
		}
		assert.Equal(t, 2, f.mailer.sentCount())
	})

	t.Run("no instructions is a no-op", func(t *testing.T) {
		t.Parallel()

		f := newEngineFixture()
		require.NoError(t, f.engine.DispatchAll(ctx, nil))
	})
}
