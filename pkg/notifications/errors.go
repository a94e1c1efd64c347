package notifications

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDefinition indicates a notification type with no template
	// definition in the registry. A registry authoring bug, fatal to the
	// dispatch instruction, never retried.
	ErrMissingDefinition = errors.New("notifications: no template definition for type")

	// ErrMissingContext indicates a domain event missing required fields.
	// A caller bug, fatal, fixed at the call site.
	ErrMissingContext = errors.New("notifications: missing required event context")

	// ErrRecipientNotFound indicates preference resolution could not find
	// the recipient. Fatal to that one instruction only.
	ErrRecipientNotFound = errors.New("notifications: recipient not found")

	// ErrDeliveryFailed indicates a transient channel transport failure.
	ErrDeliveryFailed = errors.New("notifications: delivery failed")

	// ErrNotificationNotFound is returned by storage when a record is absent.
	ErrNotificationNotFound = errors.New("notifications: notification not found")
)

// DeliveryError tags a transport failure with the channel it occurred on,
// so each channel's failure is individually attributable.
type DeliveryError struct {
	Channel Channel
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Channel, e.Err)
}

// Unwrap exposes both the sentinel and the underlying transport error, so
// errors.Is(err, ErrDeliveryFailed) and errors.Is against the transport
// error both hold.
func (e *DeliveryError) Unwrap() []error {
	return []error{ErrDeliveryFailed, e.Err}
}
