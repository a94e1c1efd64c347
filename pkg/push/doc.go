// Package push provides mobile push transports: APNs over HTTP/2 for iOS
// and Firebase Cloud Messaging for Android, behind a common Sender
// interface. Delivery is best-effort; the notification engine logs failures
// and never lets them interrupt dispatch.
package push
