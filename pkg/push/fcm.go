package push

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMSender delivers push notifications to Android devices via Firebase
// Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender creates an FCM sender from a service-account credentials file.
func NewFCMSender(ctx context.Context, cfg FCMConfig) (*FCMSender, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: CredentialsFile is required", ErrInvalidConfig)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize firebase app: %v", ErrInvalidConfig, err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize messaging client: %v", ErrInvalidConfig, err)
	}

	return &FCMSender{client: client}, nil
}

// NewFCMSenderWithClient wraps an existing messaging client, mainly for tests.
func NewFCMSenderWithClient(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

func (s *FCMSender) Platform() Platform {
	return PlatformAndroid
}

// Send pushes one notification to one device registration token.
func (s *FCMSender) Send(ctx context.Context, deviceToken string, p Payload) error {
	if deviceToken == "" {
		return ErrEmptyToken
	}

	_, err := s.client.Send(ctx, &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
		Data: p.Data,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
