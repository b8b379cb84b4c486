// Package cache provides pluggable result caching for frontier analyses.
//
// Three backends are available: a file cache for CLI usage, a Redis cache
// for the HTTP server, and a null cache that disables caching entirely.
// Values are opaque byte slices; callers serialize reports themselves and
// key them with [ReportKey].
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached analysis results stay valid.
const DefaultTTL = 24 * time.Hour

// Cache stores serialized values under string keys with per-entry TTLs.
// Implementations must treat a missing or expired entry as a miss, never
// an error.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ReportKey builds the cache key for an analysis result.
// The key covers everything that determines the report: the graph content
// hash, the target substring, and the skip list.
func ReportKey(graphHash, packageID string, skips []string) string {
	return hashKey("report", graphHash, packageID, skips)
}
