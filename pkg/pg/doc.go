// Package pg provides PostgreSQL connection helpers for the notification
// store: pooled connect with retry, a healthcheck closure, goose migrations
// over an embedded filesystem, and error classification helpers.
package pg
