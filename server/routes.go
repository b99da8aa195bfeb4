package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthValidate, ChainMiddleware(s.ValidateTokenHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("POST "+RouteTokenGenerate, ChainMiddleware(s.GenerateTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteTokenRefresh, ChainMiddleware(s.RefreshTokenHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("POST "+RouteUserRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))

	// CORS preflight never matches the method-qualified patterns above, so it
	// gets its own catch-all under the API prefix.
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.CorsMiddleware))
}
