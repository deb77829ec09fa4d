package client

import "github.com/jmolina/warden/core"

// Route is a client-side destination. Navigation happens only through
// explicit intents handed to a Navigator, never by touching shared location
// state directly.
type Route string

const (
	RouteHome           Route = "/"
	RouteLogin          Route = "/login"
	RouteRegister       Route = "/register"
	RouteDashboard      Route = "/dashboard"
	RouteAdminDashboard Route = "/admin-dashboard"
)

// Navigator consumes navigation intents. Intents are fire-and-forget: there
// is no cancellation, and when two race the last one to execute wins.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(route Route) {
	f(route)
}

// landingRoute is where a fresh login lands, by role.
func landingRoute(role core.Role) Route {
	if role == core.RoleAdmin {
		return RouteAdminDashboard
	}
	return RouteDashboard
}
