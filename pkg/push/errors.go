package push

import "errors"

var (
	ErrInvalidConfig = errors.New("push: invalid config")
	ErrSendFailed    = errors.New("push: failed to send notification")
	ErrEmptyToken    = errors.New("push: empty device token")
)
