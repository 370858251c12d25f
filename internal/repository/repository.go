package repository

import (
	"context"
	"errors"
	"time"

	"topocat/internal/domain"
)

// ErrNotFound is returned when no snapshot matches a lookup
var ErrNotFound = errors.New("snapshot not found")

// Snapshot describes one stored topology
type Snapshot struct {
	ID          string    `json:"id"`
	Catalog     string    `json:"catalog"`
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	Nodes       int       `json:"nodes"`
	Links       int       `json:"links"`
	CreatedAt   time.Time `json:"created_at"`
}

// SnapshotRepository stores frozen topologies
type SnapshotRepository interface {
	// SaveSnapshot stores t under catalog. When the latest snapshot of the
	// same topology has the same fingerprint, that snapshot is returned
	// and nothing is written.
	SaveSnapshot(ctx context.Context, catalog string, t *domain.Topology) (*Snapshot, error)

	// LatestSnapshot rebuilds the most recent snapshot of a topology
	LatestSnapshot(ctx context.Context, catalog, name string) (*domain.Topology, error)

	// GetSnapshot rebuilds one stored version of a topology. An ID that
	// belongs to another topology is not found.
	GetSnapshot(ctx context.Context, catalog, name, id string) (*domain.Topology, error)

	// ListSnapshots returns every stored snapshot, newest first
	ListSnapshots(ctx context.Context) ([]Snapshot, error)

	// Close releases resources
	Close() error
}
