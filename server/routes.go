package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	s.RegisterRouteHandler("GET "+RouteAPIUserID, ChainMiddleware(s.UserIDPreviewHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPIIdentify, ChainMiddleware(s.IdentifyHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPISession, ChainMiddleware(s.ClearSessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIDisplay, ChainMiddleware(s.DisplayHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAPIErrors, ChainMiddleware(s.ErrorCountsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPITrackError, ChainMiddleware(s.TrackErrorHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPIErrors, ChainMiddleware(s.ResetErrorsHandler(), s.APIMiddleware()...))

	// CorsMiddleware answers preflight requests itself
	s.RegisterRouteHandler("OPTIONS "+RouteAPIPreflight, ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
}
