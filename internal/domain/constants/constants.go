// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider identifiers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
