package server

import (
	"log/slog"
	"net/http"

	"voyager-server/internal/middleware"
	serverHandlers "voyager-server/internal/server/handlers"
	"voyager-server/internal/shared/database"
	"voyager-server/internal/shared/redis"
	"voyager-server/internal/universe"
	universeHandlers "voyager-server/internal/universe/handlers"
)

type Routes struct {
	db              *database.DB
	cache           *redis.Client
	universeService *universe.Service
	logger          *slog.Logger
}

func NewRoutes(db *database.DB, cache *redis.Client, universeService *universe.Service, logger *slog.Logger) *Routes {
	return &Routes{
		db:              db,
		cache:           cache,
		universeService: universeService,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.cache)
	universeHandler := universeHandlers.NewUniverseHandler(r.universeService, r.logger)
	chunkHandler := universeHandlers.NewChunkHandler(r.universeService, r.logger)
	viewerHandler := universeHandlers.NewViewerHandler(r.universeService, r.logger)
	objectsHandler := universeHandlers.NewObjectsHandler(r.universeService, r.logger)
	discoveriesHandler := universeHandlers.NewDiscoveriesHandler(r.universeService, r.logger)

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/universe", universeHandler.GetUniverse)
	mux.HandleFunc("GET /api/chunks/{cx}/{cy}", chunkHandler.GetChunk)
	mux.HandleFunc("POST /api/viewer/position", viewerHandler.UpdatePosition)
	mux.HandleFunc("GET /api/objects", objectsHandler.GetObjects)
	mux.HandleFunc("GET /api/regions", objectsHandler.GetRegion)
	mux.HandleFunc("GET /api/names", objectsHandler.GetName)
	mux.HandleFunc("POST /api/discoveries", discoveriesHandler.Sweep)
	mux.HandleFunc("GET /api/discoveries", discoveriesHandler.List)

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/universe/seed", middleware.RequireAdmin(http.HandlerFunc(universeHandler.ResetSeed)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{
			"/api/server/health", "/api/universe", "/api/chunks",
			"/api/viewer/position", "/api/objects", "/api/regions",
			"/api/names", "/api/discoveries",
		},
		"admin_endpoints", []string{"/api/universe/seed"},
	)

	return mux
}
