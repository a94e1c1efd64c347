// Package redis provides connection helpers for the unread-count cache:
// Connect with retry and a healthcheck closure over the go-redis client.
package redis
