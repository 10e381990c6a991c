package billing

// Backend REST routes, shared by the console client and the development backend.
const (
	RouteAuthLogin  = "/api/auth/login"
	RouteAuthLogout = "/api/auth/logout"

	RouteSummary         = "/api/summary"
	RouteAssemblies      = "/api/assemblies"
	RouteTransactions    = "/api/transactions"
	RouteVoidTransaction = "/api/transactions/{id}/void"
	RouteDeposits        = "/api/deposits"
	RouteUsers           = "/api/users"
	RouteUser            = "/api/users/{id}"
	RouteUserActive      = "/api/users/{id}/active"
	RouteZone            = "/api/zones/{id}"
	RouteMeterReadings   = "/api/meter-readings"
	RouteAssets          = "/api/assets"
)

// ActiveRequest is the body of POST /api/users/{id}/active.
type ActiveRequest struct {
	Active bool `json:"active"`
}
