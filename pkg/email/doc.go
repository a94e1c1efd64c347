// Package email provides the outbound email transport for notification
// delivery: a Postmark-backed sender for production and a file-based
// DevSender for local development.
//
// The notification engine depends only on the EmailSender interface, so the
// transport can be swapped without touching dispatch logic.
package email
