package session

import "context"

// Route names a screen.
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
	RouteTasks     Route = "tasks"
	RoutePractice  Route = "practice"
	RouteStorage   Route = "storage"
)

// Routes lists every route in navigation order.
var Routes = []Route{RouteLogin, RouteRegister, RouteDashboard, RouteTasks, RoutePractice, RouteStorage}

// Protected reports whether r requires a signed-in user.
func (r Route) Protected() bool {
	switch r {
	case RouteDashboard, RouteTasks, RoutePractice, RouteStorage:
		return true
	default:
		return false
	}
}

// Valid reports whether r is a known route.
func (r Route) Valid() bool {
	for _, known := range Routes {
		if r == known {
			return true
		}
	}
	return false
}

// Guard gates routes and view loads on the presence of an identity. It
// never checks the identity with the server.
type Guard struct {
	manager *Manager
}

// NewGuard creates a Guard reading identity through m.
func NewGuard(m *Manager) *Guard {
	return &Guard{manager: m}
}

// Resolve returns the route that should actually be shown for r.
func (g *Guard) Resolve(ctx context.Context, r Route) Route {
	signedIn := g.manager.IsAuthenticated(ctx)
	switch {
	case r.Protected() && !signedIn:
		return RouteLogin
	case (r == RouteLogin || r == RouteRegister) && signedIn:
		return RouteDashboard
	case !r.Valid():
		if signedIn {
			return RouteDashboard
		}
		return RouteLogin
	default:
		return r
	}
}

// Check returns the current session and whether a view may fetch.
func (g *Guard) Check(ctx context.Context) (Session, bool) {
	s := g.manager.Current(ctx)
	return s, s.IsActive()
}
