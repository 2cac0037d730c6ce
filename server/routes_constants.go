package server

// Route path constants
const (
	RouteHealth = "/healthz"

	// Identity
	RouteAPIUserID   = "/api/user-id"
	RouteAPIIdentify = "/api/identify"
	RouteAPISession  = "/api/session"
	RouteAPIDisplay  = "/api/display"

	// Error counters
	RouteAPIErrors     = "/api/errors"
	RouteAPITrackError = "/api/errors/{kind}"

	// Catch-all for CORS preflight
	RouteAPIPreflight = "/api/"
)
