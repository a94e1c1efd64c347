package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RecipientID records the recipient user identifier under the key "recipient_id".
func RecipientID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("recipient_id", id)
}

// NotificationType records the notification type under the key "notification_type".
func NotificationType(t any) slog.Attr {
	if t == nil {
		return slog.Attr{}
	}
	return slog.Any("notification_type", t)
}

// NotificationID records the notification identifier under the key "notification_id".
func NotificationID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("notification_id", id)
}

// Channel records the delivery channel under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// EventType records the domain event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// PostID records the post identifier under the key "post_id".
func PostID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("post_id", id)
}

// GroupID records the group identifier under the key "group_id".
func GroupID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("group_id", id)
}

// CommentID records the comment identifier under the key "comment_id".
func CommentID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("comment_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// DeviceToken records a truncated device token under the key "device_token".
// Tokens are truncated to avoid leaking full credentials into logs.
func DeviceToken(token string) slog.Attr {
	if len(token) > 8 {
		token = token[:8] + "..."
	}
	return slog.String("device_token", token)
}
