package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielBingham/communities-notify/pkg/email"
	"github.com/danielBingham/communities-notify/pkg/logger"
	"github.com/danielBingham/communities-notify/pkg/push"
)

// PushResult records the outcome of one best-effort push attempt. Results
// are logged by the engine and never surface to the dispatch caller.
type PushResult struct {
	Platform push.Platform
	OK       bool
	Err      error
}

// Engine performs the per-channel fan-out for a single dispatch
// instruction. Channels are independent failure domains: the email
// transport failing never rolls back the web record, and push failures are
// logged rather than returned.
type Engine struct {
	registry *Registry
	prefs    *PreferenceResolver
	storage  Storage
	mailer   email.EmailSender
	pushers  map[push.Platform]push.Sender
	logger   *slog.Logger

	wg sync.WaitGroup
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the logger for the Engine.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPushSenders registers push transports by platform. Devices whose
// platform has no registered sender are skipped.
func WithPushSenders(senders ...push.Sender) EngineOption {
	return func(e *Engine) {
		for _, s := range senders {
			if s != nil {
				e.pushers[s.Platform()] = s
			}
		}
	}
}

// NewEngine creates a dispatch engine. The mailer may be nil, in which case
// the email channel is disabled entirely.
func NewEngine(registry *Registry, prefs *PreferenceResolver, storage Storage, mailer email.EmailSender, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: registry,
		prefs:    prefs,
		storage:  storage,
		mailer:   mailer,
		pushers:  make(map[push.Platform]push.Sender),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Dispatch delivers one instruction across enabled channels.
//
// Template resolution failures abort the instruction before any channel is
// touched: no channel can render without a definition. The web record is
// written before the email transport is invoked, so a client polling for
// unread notifications sees the in-app copy no later than the email leaves
// the system. The engine does not deduplicate; calling Dispatch twice with
// the same instruction produces two records and two emails.
func (e *Engine) Dispatch(ctx context.Context, inst Instruction) error {
	def, err := e.registry.Resolve(inst.Type)
	if err != nil {
		return err
	}

	pref, recipient, err := e.prefs.Resolve(ctx, inst.RecipientID, inst.Type)
	if err != nil {
		return err
	}

	// Render everything up front so a definition or context bug fails the
	// instruction before any side effects occur.
	rendered, err := renderAll(def, inst.Context)
	if err != nil {
		return err
	}

	if pref.Web && !inst.Options.NoWeb {
		record := Notification{
			ID:        uuid.New().String(),
			UserID:    recipient.ID,
			Type:      inst.Type,
			Text:      rendered.text,
			Path:      rendered.path,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		// The in-app record is the most durable channel; a persistence
		// failure is surfaced, never swallowed.
		if err := e.storage.Create(ctx, record); err != nil {
			return fmt.Errorf("store notification for user %d: %w", recipient.ID, err)
		}
	}

	var emailErr error
	if pref.Email && !inst.Options.NoEmail && e.mailer != nil && e.emailEligible(recipient) {
		if err := e.mailer.SendEmail(ctx, email.SendEmailParams{
			SendTo:   recipient.Email,
			Subject:  rendered.subject,
			BodyHTML: rendered.body,
			Tag:      string(inst.Type),
		}); err != nil {
			// Tagged and returned after the remaining channels run; no
			// rollback of the web record.
			emailErr = &DeliveryError{Channel: ChannelEmail, Err: err}
		}
	}

	if pref.Push {
		e.dispatchPush(ctx, recipient, inst.Type, rendered)
	}

	return emailErr
}

// DispatchAll delivers a fan-out of instructions sequentially. One
// recipient's failure never aborts another's delivery; failures are joined
// and returned together.
func (e *Engine) DispatchAll(ctx context.Context, instructions []Instruction) error {
	var errs []error
	for _, inst := range instructions {
		if err := e.Dispatch(ctx, inst); err != nil {
			errs = append(errs, fmt.Errorf("dispatch %s to user %d: %w", inst.Type, inst.RecipientID, err))
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until all in-flight best-effort push deliveries complete.
// Intended for shutdown and tests.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// emailEligible applies account-state policy on top of raw preference:
// invited users have not confirmed an email address and never receive
// email.
func (e *Engine) emailEligible(user *User) bool {
	return user.Email != "" && user.Status != UserStatusInvited
}

// dispatchPush fans out to the recipient's devices as fire-and-forget
// tasks. The recipient already has their web or email copy if enabled, so
// push is strictly best-effort: each attempt's PushResult is logged, never
// returned.
func (e *Engine) dispatchPush(ctx context.Context, recipient *User, t Type, rendered renderedTemplates) {
	if len(recipient.Devices) == 0 || len(e.pushers) == 0 {
		return
	}

	payload := push.Payload{
		Title: rendered.subject,
		Body:  rendered.text,
		Data:  map[string]string{"path": rendered.path},
	}

	// Delivery outlives the triggering request; detach from its
	// cancellation while keeping its values for logging.
	pushCtx := context.WithoutCancel(ctx)

	for _, device := range recipient.Devices {
		sender, ok := e.pushers[device.Platform]
		if !ok {
			e.logger.LogAttrs(ctx, slog.LevelDebug, "no push sender for platform",
				slog.String("platform", string(device.Platform)),
				logger.RecipientID(recipient.ID),
			)
			continue
		}

		e.wg.Add(1)
		go func(device Device, sender push.Sender) {
			defer e.wg.Done()

			result := PushResult{Platform: device.Platform}
			if err := sender.Send(pushCtx, device.Token, payload); err != nil {
				result.Err = err
			} else {
				result.OK = true
			}
			e.recordPushResult(pushCtx, recipient.ID, t, device, result)
		}(device, sender)
	}
}

func (e *Engine) recordPushResult(ctx context.Context, recipientID int64, t Type, device Device, result PushResult) {
	if result.OK {
		e.logger.LogAttrs(ctx, slog.LevelDebug, "push notification delivered",
			logger.RecipientID(recipientID),
			logger.NotificationType(t),
			logger.Channel(string(ChannelPush)),
			slog.String("platform", string(result.Platform)),
		)
		return
	}
	e.logger.LogAttrs(ctx, slog.LevelWarn, "push notification failed",
		logger.RecipientID(recipientID),
		logger.NotificationType(t),
		logger.Channel(string(ChannelPush)),
		slog.String("platform", string(result.Platform)),
		logger.DeviceToken(device.Token),
		logger.Error(result.Err),
	)
}

// renderedTemplates holds the four rendered strings for one instruction.
type renderedTemplates struct {
	subject string
	body    string
	text    string
	path    string
}

func renderAll(def *Definition, c Context) (renderedTemplates, error) {
	var r renderedTemplates
	var err error
	if r.subject, err = def.Subject(c); err != nil {
		return r, err
	}
	if r.body, err = def.Body(c); err != nil {
		return r, err
	}
	if r.text, err = def.Text(c); err != nil {
		return r, err
	}
	if r.path, err = def.Path(c); err != nil {
		return r, err
	}
	return r, nil
}
