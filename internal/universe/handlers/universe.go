package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"voyager-server/internal/shared/errors"
	"voyager-server/internal/shared/response"
	"voyager-server/internal/universe"
)

type UniverseHandler struct {
	service *universe.Service
	logger  *slog.Logger
}

func NewUniverseHandler(service *universe.Service, logger *slog.Logger) *UniverseHandler {
	return &UniverseHandler{
		service: service,
		logger:  logger,
	}
}

// GetUniverse handles GET /api/universe
func (h *UniverseHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_universe")
	logger.Debug("Fetching universe status")

	response.Success(w, http.StatusOK, h.service.Status())
}

type resetSeedRequest struct {
	Seed float64 `json:"seed"`
}

type resetSeedResponse struct {
	Seed int64 `json:"seed"`
}

// ResetSeed handles POST /api/universe/seed - Admin only
func (h *UniverseHandler) ResetSeed(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "reset_seed")

	var req resetSeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	seed, err := h.service.ResetSeed(req.Seed)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Universe seed reset", "seed", seed)
	response.Success(w, http.StatusOK, resetSeedResponse{Seed: seed})
}
