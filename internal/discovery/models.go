package discovery

import (
	"context"
	"time"
)

// Record is one persisted discovery. Discovery is the only generated state
// the server stores; the objects themselves are regenerated on demand and
// their flags re-applied from these records.
type Record struct {
	ObjectID     string    `json:"object_id"`
	ObjectType   string    `json:"object_type"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Store is the persistence surface for discoveries. The Postgres repository
// is the production implementation; tests use an in-memory fake.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Has(ctx context.Context, objectID string) (bool, error)
	List(ctx context.Context) ([]Record, error)
}
