package notifications

// Context is the per-dispatch data bag used to render templates. A fresh,
// fully populated Context is built by the router for every instruction; it
// is never shared across dispatches and never persisted. Templates render
// with missingkey=error, so a builder that leaves a referenced key out
// fails the dispatch before any channel side effects.
type Context map[string]any
