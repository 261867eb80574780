package universe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"voyager-server/internal/celestial"
	"voyager-server/internal/chunk"
	"voyager-server/internal/discovery"
	"voyager-server/internal/naming"
	"voyager-server/internal/region"
	"voyager-server/internal/shared/errors"
	"voyager-server/internal/spatial"
)

// Service is the single entry point HTTP handlers use. The chunk manager is
// not safe for concurrent use, so every call takes the service mutex.
type Service struct {
	mu        sync.Mutex
	manager   *chunk.Manager
	naming    *naming.Service
	discovery *discovery.Service
	logger    *slog.Logger
	timeScale float64
	epoch     time.Time
}

func NewService(manager *chunk.Manager, namer *naming.Service, disc *discovery.Service, logger *slog.Logger) *Service {
	return &Service{
		manager:   manager,
		naming:    namer,
		discovery: disc,
		logger:    logger.With("component", "universe_service"),
		timeScale: 1.0,
		epoch:     time.Now(),
	}
}

// SetTimeScale adjusts how fast orbital time advances relative to wall
// clock time. Call before serving; it is not synchronized.
func (s *Service) SetTimeScale(scale float64) {
	if scale > 0 {
		s.timeScale = scale
	}
}

// Status snapshots the universe configuration and cache state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{
		Seed:         s.manager.Seed(),
		LoadRadius:   s.manager.LoadRadius(),
		UnloadRadius: s.manager.UnloadRadius(),
		ActiveChunks: s.manager.ActiveChunkCount(),
		TimeScale:    s.timeScale,
		OrbitTime:    time.Since(s.epoch).Seconds() * s.timeScale,
	}
}

// ResetSeed switches the universe to a new seed. Everything cached is
// dropped; persisted discoveries remain and re-apply only where object ids
// happen to coincide.
func (s *Service) ResetSeed(rawSeed float64) (int64, error) {
	seed, err := chunk.ValidateSeed(rawSeed)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.manager.Reset(seed)
	s.naming.ClearCache()
	s.logger.Info("Universe seed reset", "operation", "reset_seed", "seed", seed)
	return seed, nil
}

// Chunk generates (or fetches) one chunk and re-applies stored discovery
// flags to its objects.
func (s *Service) Chunk(ctx context.Context, cx, cy int) (*chunk.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.manager.GenerateChunk(spatial.ChunkCoord{CX: cx, CY: cy})
	if err := s.discovery.Apply(ctx, ch.Bodies()); err != nil {
		return nil, err
	}
	return ch, nil
}

// UpdateViewer moves the viewer: streams chunks in and out around the new
// position, re-applies stored discoveries to anything newly loaded, then
// sweeps for fresh discoveries in range.
func (s *Service) UpdateViewer(ctx context.Context, x, y float64) (*ViewerUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, evicted := s.manager.UpdateActiveChunks(x, y)

	bodies := s.manager.ActiveObjects().Bodies()
	if err := s.discovery.Apply(ctx, bodies); err != nil {
		return nil, err
	}

	found, err := s.discovery.Sweep(ctx, x, y, bodies)
	if err != nil {
		return nil, err
	}

	update := &ViewerUpdate{
		ViewerChunk:  spatial.ToChunkCoord(x, y).String(),
		Loaded:       coordStrings(loaded),
		Evicted:      coordStrings(evicted),
		ActiveChunks: s.manager.ActiveChunkCount(),
		Discovered:   s.events(found),
	}
	return update, nil
}

// ActiveObjects returns every loaded object by family, discovery flags
// applied.
func (s *Service) ActiveObjects(ctx context.Context) (*chunk.ActiveObjects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg := s.manager.ActiveObjects()
	if err := s.discovery.Apply(ctx, agg.Bodies()); err != nil {
		return nil, err
	}
	return agg, nil
}

// RegionAt classifies a world position.
func (s *Service) RegionAt(x, y float64) region.Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.manager.RegionAt(x, y)
}

// NameAt resolves the designation of the object nearest to a position,
// optionally restricted to one family. The chunk holding the position is
// generated on demand, so names resolve even for places never visited.
func (s *Service) NameAt(x, y float64, objType string) (*naming.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.manager.GenerateChunk(spatial.ToChunkCoord(x, y))

	var nearest celestial.Body
	best := 0.0
	for _, b := range ch.Bodies() {
		if objType != "" && string(b.Kind()) != objType {
			continue
		}
		bx, by := b.Position()
		d := spatial.Dist(x, y, bx, by)
		if nearest == nil || d < best {
			nearest, best = b, d
		}
	}
	if nearest == nil {
		return nil, errors.NotFoundf("no matching object in chunk")
	}
	return s.naming.FullDesignation(nearest), nil
}

// Sweep records discoveries around a position without moving the active
// window.
func (s *Service) Sweep(ctx context.Context, x, y float64) ([]DiscoveryEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bodies := s.manager.ActiveObjects().Bodies()
	if err := s.discovery.Apply(ctx, bodies); err != nil {
		return nil, err
	}
	found, err := s.discovery.Sweep(ctx, x, y, bodies)
	if err != nil {
		return nil, err
	}
	return s.events(found), nil
}

// Discoveries lists every persisted discovery record.
func (s *Service) Discoveries(ctx context.Context) ([]discovery.Record, error) {
	return s.discovery.List(ctx)
}

func (s *Service) events(found []celestial.Body) []DiscoveryEvent {
	events := make([]DiscoveryEvent, 0, len(found))
	for _, b := range found {
		events = append(events, DiscoveryEvent{
			ObjectID: b.ObjectID(),
			Type:     string(b.Kind()),
			Name:     s.naming.DisplayName(b),
			Notable:  s.naming.IsNotable(b),
			Record:   s.naming.FullDesignation(b),
		})
	}
	return events
}

func coordStrings(coords []spatial.ChunkCoord) []string {
	out := make([]string, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.String())
	}
	return out
}
