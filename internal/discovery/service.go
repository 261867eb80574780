package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voyager-server/internal/celestial"
	"voyager-server/internal/spatial"
)

// Service decides when a viewer discovers objects and keeps the persisted
// record in sync with the regenerated descriptors. It never generates
// anything itself.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With("component", "discovery_service"),
		now:    time.Now,
	}
}

// InRange reports whether the viewer is close enough to discover the
// object. The threshold depends only on the object's family.
func (s *Service) InRange(viewerX, viewerY float64, obj celestial.Body) bool {
	x, y := obj.Position()
	return spatial.Dist(viewerX, viewerY, x, y) <= celestial.DiscoveryRange(obj.Kind())
}

// Sweep marks every in-range undiscovered object as discovered, persists
// the records, and returns what was newly found.
func (s *Service) Sweep(ctx context.Context, viewerX, viewerY float64, objects []celestial.Body) ([]celestial.Body, error) {
	var found []celestial.Body
	for _, obj := range objects {
		if obj.IsDiscovered() || !s.InRange(viewerX, viewerY, obj) {
			continue
		}
		if err := s.MarkDiscovered(ctx, obj); err != nil {
			return found, err
		}
		found = append(found, obj)
	}

	if len(found) > 0 {
		s.logger.Info("Discoveries recorded",
			"operation", "sweep",
			"count", len(found),
		)
	}
	return found, nil
}

// MarkDiscovered flips the flag on the descriptor and persists the record.
func (s *Service) MarkDiscovered(ctx context.Context, obj celestial.Body) error {
	x, y := obj.Position()
	rec := Record{
		ObjectID:     obj.ObjectID(),
		ObjectType:   string(obj.Kind()),
		X:            x,
		Y:            y,
		DiscoveredAt: s.now(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to mark %s discovered: %w", obj.ObjectID(), err)
	}
	obj.MarkDiscovered()
	return nil
}

// Apply re-applies stored discovery flags to freshly generated descriptors.
// Generation always produces undiscovered objects; this is the step that
// makes discoveries survive chunk eviction and reload.
func (s *Service) Apply(ctx context.Context, objects []celestial.Body) error {
	for _, obj := range objects {
		if obj.IsDiscovered() {
			continue
		}
		found, err := s.store.Has(ctx, obj.ObjectID())
		if err != nil {
			return fmt.Errorf("failed to apply discovery state: %w", err)
		}
		if found {
			obj.MarkDiscovered()
		}
	}
	return nil
}

// List returns every persisted discovery.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}
