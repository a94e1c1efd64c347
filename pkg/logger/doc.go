// Package logger provides a configurable slog factory for the notification
// service, with typed attribute helpers for the domain (user, recipient,
// notification type, delivery channel) and a handler decorator that injects
// request-scoped attributes from context.
package logger
