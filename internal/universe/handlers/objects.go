package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"voyager-server/internal/shared/errors"
	"voyager-server/internal/shared/response"
	"voyager-server/internal/universe"
)

type ObjectsHandler struct {
	service *universe.Service
	logger  *slog.Logger
}

func NewObjectsHandler(service *universe.Service, logger *slog.Logger) *ObjectsHandler {
	return &ObjectsHandler{
		service: service,
		logger:  logger,
	}
}

// GetObjects handles GET /api/objects
func (h *ObjectsHandler) GetObjects(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_objects")
	logger.Debug("Fetching active objects")

	agg, err := h.service.ActiveObjects(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, agg)
}

// GetRegion handles GET /api/regions?x=&y=
func (h *ObjectsHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_region")

	x, y, err := parseXY(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.service.RegionAt(x, y))
}

// GetName handles GET /api/names?x=&y=&type=
func (h *ObjectsHandler) GetName(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_name")

	x, y, err := parseXY(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	rec, err := h.service.NameAt(x, y, r.URL.Query().Get("type"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, rec)
}

func parseXY(r *http.Request) (float64, float64, error) {
	q := r.URL.Query()
	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		return 0, 0, errors.Validationf("invalid x coordinate: %q", q.Get("x"))
	}
	y, err := strconv.ParseFloat(q.Get("y"), 64)
	if err != nil {
		return 0, 0, errors.Validationf("invalid y coordinate: %q", q.Get("y"))
	}
	return x, y, nil
}
