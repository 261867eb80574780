package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"voyager-server/internal/shared/errors"
	"voyager-server/internal/shared/response"
	"voyager-server/internal/universe"
)

type DiscoveriesHandler struct {
	service *universe.Service
	logger  *slog.Logger
}

func NewDiscoveriesHandler(service *universe.Service, logger *slog.Logger) *DiscoveriesHandler {
	return &DiscoveriesHandler{
		service: service,
		logger:  logger,
	}
}

type sweepRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type sweepResponse struct {
	Discovered []universe.DiscoveryEvent `json:"discovered"`
}

// Sweep handles POST /api/discoveries: records every active object the
// given position can discover.
func (h *DiscoveriesHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "sweep_discoveries")

	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	events, err := h.service.Sweep(r.Context(), req.X, req.Y)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if len(events) > 0 {
		logger.Info("Discoveries recorded", "count", len(events))
	}
	response.Success(w, http.StatusOK, sweepResponse{Discovered: events})
}

// List handles GET /api/discoveries
func (h *DiscoveriesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_discoveries")

	records, err := h.service.Discoveries(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, records)
}
