// Package store persists completed frontier analyses so the HTTP API can
// list and re-serve past reports. Two implementations exist: an in-memory
// store for single-instance and test use, and a MongoDB store for
// deployments that outlive the process.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/pkgscope/frontier/pkg/frontier"
)

// ErrNotFound is returned when a report ID does not exist in the store.
var ErrNotFound = errors.New("report not found")

// Record is one archived analysis run.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	PackageID string           `json:"package_id" bson:"package_id"`
	Skips     []string         `json:"skips,omitempty" bson:"skips,omitempty"`
	GraphHash string           `json:"graph_hash" bson:"graph_hash"`
	Report    *frontier.Report `json:"report" bson:"report"`
}

// Store archives analysis records.
type Store interface {
	// Save persists a record. Saving an existing ID overwrites it.
	Save(ctx context.Context, rec Record) error
	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	// List returns records sorted by creation time, newest first,
	// up to limit entries. A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]Record, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}
