package push

import (
	"context"
	"log/slog"
)

// LogSender implements Sender for local development and tests.
// It logs the payload instead of contacting a push gateway.
type LogSender struct {
	platform Platform
	logger   *slog.Logger
}

// NewLogSender creates a log-only push sender for the given platform.
func NewLogSender(platform Platform, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{platform: platform, logger: logger}
}

func (s *LogSender) Platform() Platform {
	return s.platform
}

func (s *LogSender) Send(ctx context.Context, deviceToken string, p Payload) error {
	if deviceToken == "" {
		return ErrEmptyToken
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "push notification (dev)",
		slog.String("platform", string(s.platform)),
		slog.String("title", p.Title),
		slog.String("body", p.Body),
	)
	return nil
}
