package server

// Route path constants
// All console routes are defined here to ensure consistency and prevent typos
const (
	RouteHealth = "/health"

	// Auth Routes - Login & Logout
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Dashboard Routes
	RouteDashboard       = "/dashboard"
	RouteTransactions    = "/dashboard/transactions"
	RouteVoidTransaction = "/dashboard/transactions/{id}/void"
	RouteDeposits        = "/dashboard/deposits"
	RouteStaff           = "/dashboard/staff"
	RouteDeactivateStaff = "/dashboard/staff/{id}/deactivate"
	RouteReactivateStaff = "/dashboard/staff/{id}/reactivate"
	RouteAssemblies      = "/dashboard/assemblies"
	RouteZone            = "/dashboard/zones/{id}"
	RouteReadings        = "/dashboard/readings"
	RouteAssets          = "/dashboard/assets"

	// Static Asset Routes
	RouteStatic = "/static/*"
)
