package universe

import (
	"voyager-server/internal/naming"
)

// Status is the introspection snapshot served at GET /api/universe.
// OrbitTime is the current universal time for orbital animation; clients
// evaluate orbital elements at this time plus local elapsed time scaled by
// TimeScale.
type Status struct {
	Seed         int64   `json:"seed"`
	LoadRadius   int     `json:"load_radius"`
	UnloadRadius int     `json:"unload_radius"`
	ActiveChunks int     `json:"active_chunks"`
	TimeScale    float64 `json:"time_scale"`
	OrbitTime    float64 `json:"orbit_time"`
}

// DiscoveryEvent is one newly discovered object, already named.
type DiscoveryEvent struct {
	ObjectID string         `json:"object_id"`
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Notable  bool           `json:"notable"`
	Record   *naming.Record `json:"record"`
}

// ViewerUpdate reports the effect of a viewer position change.
type ViewerUpdate struct {
	ViewerChunk  string           `json:"viewer_chunk"`
	Loaded       []string         `json:"loaded"`
	Evicted      []string         `json:"evicted"`
	ActiveChunks int              `json:"active_chunks"`
	Discovered   []DiscoveryEvent `json:"discovered"`
}
