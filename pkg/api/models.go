package api

// RouteRequest is the JSON body for POST /api/v1/route.
// Pointers distinguish a missing node from node 0.
type RouteRequest struct {
	Start *uint64 `json:"start"`
	Goal  *uint64 `json:"goal"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	Path []uint64 `json:"path"`
	Cost uint64   `json:"cost"`
}

// CoordRouteRequest is the JSON body for POST /api/v1/route/coords.
type CoordRouteRequest struct {
	Start LatLngJSON `json:"start"`
	End   LatLngJSON `json:"end"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordRouteResponse is the JSON response for a successful coordinate query.
type CoordRouteResponse struct {
	RouteResponse
	StartNode uint64       `json:"start_node"`
	EndNode   uint64       `json:"end_node"`
	Geometry  []LatLngJSON `json:"geometry"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes         int `json:"num_nodes"`
	NumEdges         int `json:"num_edges"`
	NumComponents    int `json:"num_components"`
	LargestComponent int `json:"largest_component"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
