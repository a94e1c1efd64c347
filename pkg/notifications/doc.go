// Package notifications implements the notification dispatch and delivery
// engine for the Communities application.
//
// A domain event (a comment was created, a group membership changed) enters
// through the Notifier, which asks the Router to derive dispatch
// instructions: who should be notified, with which notification type and
// which template context. Each instruction then passes through the Engine,
// which resolves the type's template Definition, resolves the recipient's
// channel Preference, and fans out across channels:
//
//   - web: a Notification record persisted through Storage
//   - email: rendered subject/body handed to the email transport
//   - push: best-effort delivery to the recipient's devices, failures
//     logged and never surfaced
//
// Channels are independent failure domains. The web record is written
// before the email transport is invoked; an email failure is returned as a
// channel-tagged DeliveryError with the web record left in place.
//
// The template Registry is built once at process start and read-only
// afterwards; template Contexts are constructed fresh per dispatch. The
// engine itself holds no shared mutable state.
//
// Basic usage:
//
//	registry := notifications.MustNewRegistry()
//	prefs := notifications.NewPreferenceResolver(users)
//	engine := notifications.NewEngine(registry, prefs, storage, mailer,
//		notifications.WithPushSenders(apns, fcm),
//	)
//	router := notifications.NewRouter(deps, "https://communities.social")
//	notifier := notifications.NewNotifier(router, engine)
//
//	err := notifier.Notify(ctx, notifications.CommentCreatedEvent{
//		ActorID:   commenter.ID,
//		PostID:    post.ID,
//		CommentID: comment.ID,
//	}, notifications.Options{})
package notifications
