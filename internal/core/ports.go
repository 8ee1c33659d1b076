package core

import (
	"context"
)

// ClassifierClient is the backend capability that classifies arbitrary text
// as scam or safe. It returns the backend's raw two-line reply; parsing that
// reply into a ClassificationResult happens in this package.
type ClassifierClient interface {
	ClassifyText(ctx context.Context, text string) (string, error)
}

// ResponderClient is the backend capability that generates the next
// conversational turn for a flattened scam-conversation transcript.
type ResponderClient interface {
	GenerateReply(ctx context.Context, transcript string) (string, error)
}

// CacheRepository stores classification results keyed by text hash.
type CacheRepository interface {
	// Get retrieves a cached entry by text hash.
	Get(ctx context.Context, textHash string) (*CacheEntry, error)

	// Set stores a cache entry.
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, textHash string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}
