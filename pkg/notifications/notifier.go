package notifications

import (
	"context"
	"log/slog"

	"github.com/danielBingham/communities-notify/pkg/logger"
)

// Notifier ties the event router and the dispatch engine together: one call
// per domain event, fan-out and channel delivery handled inside.
type Notifier struct {
	router *Router
	engine *Engine
	logger *slog.Logger
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithNotifierLogger sets the logger for the Notifier.
func WithNotifierLogger(logger *slog.Logger) NotifierOption {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// NewNotifier creates a notifier over a router and engine.
func NewNotifier(router *Router, engine *Engine, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		router: router,
		engine: engine,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Notify routes one domain event and dispatches the resulting
// instructions. Routing errors (missing context, unknown actors) abort
// before any delivery; per-recipient delivery failures are joined and
// returned for the caller to log, with already-delivered channels left in
// place.
func (n *Notifier) Notify(ctx context.Context, event Event, opts Options) error {
	instructions, err := n.router.Route(ctx, event, opts)
	if err != nil {
		return err
	}
	if len(instructions) == 0 {
		return nil
	}

	n.logger.LogAttrs(ctx, slog.LevelDebug, "dispatching notifications",
		logger.EventType(event.eventName()),
		slog.Int("instruction_count", len(instructions)),
	)

	return n.engine.DispatchAll(ctx, instructions)
}

// Engine returns the underlying dispatch engine, e.g. to drain push
// deliveries on shutdown.
func (n *Notifier) Engine() *Engine {
	return n.engine
}
