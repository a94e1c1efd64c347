package push

import "context"

// Platform identifies the mobile platform a device token belongs to.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Payload is the rendered content of a single push notification.
type Payload struct {
	Title string            // Alert title
	Body  string            // Alert body text
	Data  map[string]string // Custom key/value data, e.g. a deep-link path
}

// Sender delivers a push notification to a single device token.
// Implementations are best-effort transports: callers are expected to log
// failures rather than propagate them.
type Sender interface {
	Send(ctx context.Context, deviceToken string, p Payload) error
	Platform() Platform
}
