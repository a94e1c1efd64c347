package push

import (
	"context"
	"errors"
	"fmt"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNSSender delivers push notifications to iOS devices over HTTP/2 APNs.
type APNSSender struct {
	client *apns2.Client
	topic  string
}

// NewAPNSSender creates an APNs sender using token-based authentication.
func NewAPNSSender(cfg APNSConfig) (*APNSSender, error) {
	if cfg.KeyPath == "" || cfg.KeyID == "" || cfg.TeamID == "" {
		return nil, fmt.Errorf("%w: KeyPath, KeyID and TeamID are required", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: Topic (bundle id) is required", ErrInvalidConfig)
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load APNs signing key: %v", ErrInvalidConfig, err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Sandbox {
		client = client.Development()
	} else {
		client = client.Production()
	}

	return &APNSSender{client: client, topic: cfg.Topic}, nil
}

func (s *APNSSender) Platform() Platform {
	return PlatformIOS
}

// Send pushes one notification to one device token.
// A rejected token (e.g. Unregistered) is reported as an error; the caller
// decides whether to prune the token.
func (s *APNSSender) Send(ctx context.Context, deviceToken string, p Payload) error {
	if deviceToken == "" {
		return ErrEmptyToken
	}

	pl := payload.NewPayload().
		AlertTitle(p.Title).
		AlertBody(p.Body).
		Sound("default")
	for k, v := range p.Data {
		pl = pl.Custom(k, v)
	}

	res, err := s.client.PushWithContext(ctx, &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload:     pl,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if !res.Sent() {
		return fmt.Errorf("%w: apns %d %s", ErrSendFailed, res.StatusCode, res.Reason)
	}
	return nil
}
