package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"voyager-server/internal/shared/errors"
	"voyager-server/internal/shared/response"
	"voyager-server/internal/universe"
)

type ChunkHandler struct {
	service *universe.Service
	logger  *slog.Logger
}

func NewChunkHandler(service *universe.Service, logger *slog.Logger) *ChunkHandler {
	return &ChunkHandler{
		service: service,
		logger:  logger,
	}
}

// GetChunk handles GET /api/chunks/{cx}/{cy}
func (h *ChunkHandler) GetChunk(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_chunk")

	cx, err := strconv.Atoi(r.PathValue("cx"))
	if err != nil {
		response.Error(w, r, logger, errors.Validationf("invalid chunk x coordinate: %q", r.PathValue("cx")))
		return
	}
	cy, err := strconv.Atoi(r.PathValue("cy"))
	if err != nil {
		response.Error(w, r, logger, errors.Validationf("invalid chunk y coordinate: %q", r.PathValue("cy")))
		return
	}

	logger.Debug("Fetching chunk", "cx", cx, "cy", cy)

	ch, err := h.service.Chunk(r.Context(), cx, cy)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, ch)
}
