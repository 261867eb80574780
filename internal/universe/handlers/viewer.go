package handlers

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"voyager-server/internal/shared/errors"
	"voyager-server/internal/shared/response"
	"voyager-server/internal/universe"
)

type ViewerHandler struct {
	service *universe.Service
	logger  *slog.Logger
}

func NewViewerHandler(service *universe.Service, logger *slog.Logger) *ViewerHandler {
	return &ViewerHandler{
		service: service,
		logger:  logger,
	}
}

type viewerPositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UpdatePosition handles POST /api/viewer/position
func (h *ViewerHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "update_viewer_position")

	var req viewerPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}
	if math.IsNaN(req.X) || math.IsInf(req.X, 0) || math.IsNaN(req.Y) || math.IsInf(req.Y, 0) {
		response.Error(w, r, logger, errors.Validation("viewer position must be finite"))
		return
	}

	update, err := h.service.UpdateViewer(r.Context(), req.X, req.Y)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Debug("Viewer position updated",
		"viewer_chunk", update.ViewerChunk,
		"loaded", len(update.Loaded),
		"evicted", len(update.Evicted),
		"discovered", len(update.Discovered),
	)
	response.Success(w, http.StatusOK, update)
}
