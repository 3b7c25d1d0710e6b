package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"travel_planner/pkg/geo"
	"travel_planner/pkg/graph"
	"travel_planner/pkg/routing"
)

const maxBodyBytes = 1024

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router routing.Router
	stats  StatsResponse
	logger *slog.Logger
}

// NewHandlers creates handlers with the given router.
func NewHandlers(router routing.Router, stats StatsResponse, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		router: router,
		stats:  stats,
		logger: logger,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Start == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "start")
		return
	}
	if req.Goal == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "goal")
		return
	}

	result, err := h.router.Route(r.Context(), graph.Node(*req.Start), graph.Node(*req.Goal))
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRouteResponse(result))
}

// HandleRouteCoords handles POST /api/v1/route/coords.
func (h *Handlers) HandleRouteCoords(w http.ResponseWriter, r *http.Request) {
	var req CoordRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !geo.ValidCoord(req.Start.Lat, req.Start.Lng) {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if !geo.ValidCoord(req.End.Lat, req.End.Lng) {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	result, err := h.router.RouteCoords(r.Context(),
		routing.LatLng{Lat: req.Start.Lat, Lng: req.Start.Lng},
		routing.LatLng{Lat: req.End.Lat, Lng: req.End.Lng},
	)
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	resp := CoordRouteResponse{
		RouteResponse: toRouteResponse(&result.Route),
		StartNode:     uint64(result.From),
		EndNode:       uint64(result.To),
		Geometry:      make([]LatLngJSON, len(result.Geometry)),
	}
	for i, ll := range result.Geometry {
		resp.Geometry[i] = LatLngJSON{Lat: ll.Lat, Lng: ll.Lng}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

func (h *Handlers) writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, routing.ErrNoRoute):
		writeError(w, http.StatusNotFound, "no_route_found", "")
	case errors.Is(err, routing.ErrPointTooFar):
		writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "")
	case errors.Is(err, routing.ErrBudgetExceeded):
		writeError(w, http.StatusUnprocessableEntity, "search_budget_exceeded", "")
	case errors.Is(err, routing.ErrSnappingUnavailable):
		writeError(w, http.StatusNotImplemented, "snapping_unavailable", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	default:
		h.logger.ErrorContext(r.Context(), "route failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func toRouteResponse(r *routing.Route) RouteResponse {
	path := make([]uint64, len(r.Path))
	for i, n := range r.Path {
		path[i] = uint64(n)
	}
	return RouteResponse{Path: path, Cost: uint64(r.Cost)}
}

// decodeJSON enforces the content type and size limit and decodes the body
// into dst. It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
