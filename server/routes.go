package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Dashboard pages (require an authenticated session)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTransactions, ChainMiddleware(s.TransactionsHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteVoidTransaction, ChainMiddleware(s.VoidTransactionHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteDeposits, ChainMiddleware(s.DepositsHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaff, ChainMiddleware(s.StaffHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteDeactivateStaff, ChainMiddleware(s.SetStaffActiveHandler(false), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteReactivateStaff, ChainMiddleware(s.SetStaffActiveHandler(true), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAssemblies, ChainMiddleware(s.AssembliesHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteZone, ChainMiddleware(s.ZoneHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteReadings, ChainMiddleware(s.ReadingsHandler(), s.DashboardMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAssets, ChainMiddleware(s.AssetsHandler(), s.DashboardMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(FileServerHandler().ServeHTTP, s.CacheMiddleware, s.CompressionMiddleware))

	s.router.NotFound(ChainMiddleware(s.NotFoundHandler(), s.LoggingMiddleware))
}
