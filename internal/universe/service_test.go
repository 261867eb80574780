package universe

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager-server/internal/celestial"
	"voyager-server/internal/chunk"
	"voyager-server/internal/discovery"
	"voyager-server/internal/naming"
	"voyager-server/internal/shared/errors"
)

type memStore struct {
	records map[string]discovery.Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]discovery.Record)}
}

func (m *memStore) Save(_ context.Context, rec discovery.Record) error {
	if _, ok := m.records[rec.ObjectID]; !ok {
		m.records[rec.ObjectID] = rec
	}
	return nil
}

func (m *memStore) Has(_ context.Context, objectID string) (bool, error) {
	_, ok := m.records[objectID]
	return ok, nil
}

func (m *memStore) List(_ context.Context) ([]discovery.Record, error) {
	out := make([]discovery.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func newTestService(t *testing.T, seed int64, tune func(*celestial.Tuning)) (*Service, *memStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tuning := celestial.DefaultTuning()
	if tune != nil {
		tune(&tuning)
	}

	manager, err := chunk.NewManager(chunk.Config{
		Seed:            seed,
		LoadRadius:      1,
		UnloadRadius:    3,
		MaxActiveChunks: 100,
		Tuning:          tuning,
	}, log)
	require.NoError(t, err)

	store := newMemStore()
	svc := NewService(
		manager,
		naming.NewService(log),
		discovery.NewService(store, log),
		log,
	)
	return svc, store
}

func TestStatus(t *testing.T) {
	svc, _ := newTestService(t, 12345, nil)

	st := svc.Status()
	assert.Equal(t, int64(12345), st.Seed)
	assert.Equal(t, 1, st.LoadRadius)
	assert.Equal(t, 3, st.UnloadRadius)
	assert.Equal(t, 0, st.ActiveChunks)
	assert.Equal(t, 1.0, st.TimeScale)
	assert.GreaterOrEqual(t, st.OrbitTime, 0.0)
}

func TestResetSeed(t *testing.T) {
	svc, _ := newTestService(t, 1, nil)

	seed, err := svc.ResetSeed(99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), seed)
	assert.Equal(t, int64(99), svc.Status().Seed)

	_, err = svc.ResetSeed(1.5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
}

func TestChunk_AppliesStoredDiscoveries(t *testing.T) {
	svc, store := newTestService(t, 12345, func(tn *celestial.Tuning) {
		tn.StarChance = 1.0
	})
	ctx := context.Background()

	ch, err := svc.Chunk(ctx, 0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, ch.CelestialStars)

	star := ch.CelestialStars[0]
	require.False(t, star.IsDiscovered())

	// Simulate an earlier session having discovered this star.
	store.records[star.ObjectID()] = discovery.Record{
		ObjectID:   star.ObjectID(),
		ObjectType: string(celestial.TypeStar),
	}

	// Force regeneration: reset to the same seed, fetch the chunk again.
	_, err = svc.ResetSeed(12345)
	require.NoError(t, err)
	ch2, err := svc.Chunk(ctx, 0, 0)
	require.NoError(t, err)

	var reloaded *celestial.Star
	for _, s := range ch2.CelestialStars {
		if s.ObjectID() == star.ObjectID() {
			reloaded = s
		}
	}
	require.NotNil(t, reloaded)
	assert.True(t, reloaded.IsDiscovered())
}

func TestUpdateViewer_StreamsAndDiscovers(t *testing.T) {
	svc, store := newTestService(t, 777, func(tn *celestial.Tuning) {
		tn.StarChance = 1.0
	})
	ctx := context.Background()

	update, err := svc.UpdateViewer(ctx, 500, 500)
	require.NoError(t, err)
	assert.Equal(t, "0,0", update.ViewerChunk)
	assert.Len(t, update.Loaded, 9)
	assert.Empty(t, update.Evicted)
	assert.Equal(t, 9, update.ActiveChunks)

	// Stars in the viewer's own chunk are well inside their discovery range.
	require.NotEmpty(t, update.Discovered)
	for _, ev := range update.Discovered {
		assert.NotEmpty(t, ev.Name)
		assert.NotNil(t, ev.Record)
		assert.Contains(t, store.records, ev.ObjectID)
	}

	// Standing still discovers nothing new.
	update2, err := svc.UpdateViewer(ctx, 500, 500)
	require.NoError(t, err)
	assert.Empty(t, update2.Loaded)
	assert.Empty(t, update2.Discovered)
}

func TestNameAt(t *testing.T) {
	svc, _ := newTestService(t, 424242, func(tn *celestial.Tuning) {
		tn.StarChance = 1.0
	})

	rec, err := svc.NameAt(500, 500, "star")
	require.NoError(t, err)
	assert.Equal(t, celestial.TypeStar, rec.Kind)
	assert.NotEmpty(t, rec.Designation)

	// Stable before vs after a reload of the same universe.
	_, err = svc.ResetSeed(424242)
	require.NoError(t, err)
	rec2, err := svc.NameAt(500, 500, "star")
	require.NoError(t, err)
	assert.Equal(t, rec.Designation, rec2.Designation)

	_, err = svc.NameAt(500, 500, "no-such-family")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
}

func TestSweepAndDiscoveries(t *testing.T) {
	svc, _ := newTestService(t, 777, func(tn *celestial.Tuning) {
		tn.StarChance = 1.0
	})
	ctx := context.Background()

	_, err := svc.UpdateViewer(ctx, 500, 500)
	require.NoError(t, err)

	records, err := svc.Discoveries(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	// Sweeping a distant corner of the active window may find more, but
	// never errors and never duplicates.
	before := len(records)
	events, err := svc.Sweep(ctx, 1400, 500)
	require.NoError(t, err)

	records, err = svc.Discoveries(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+len(events), len(records))
}
