package client

import "github.com/jmolina/warden/core"

// Render is what a guarded route should show.
type Render int

const (
	// RenderNone means show nothing; a redirect intent accompanies it.
	RenderNone Render = iota
	// RenderLoading means the auth state is still unresolved.
	RenderLoading
	// RenderContent means the viewer may see the protected content.
	RenderContent
	// RenderDenied means the viewer is logged in but lacks the role.
	RenderDenied
)

// Decision is the guard's verdict for one route evaluation. Redirect is empty
// unless the viewer should be sent elsewhere.
type Decision struct {
	Render   Render
	Redirect Route
}

// Evaluate decides what a route restricted to the allowed roles should do for
// the given auth state. It is pure: same inputs, same decision. An empty
// allowed list admits any authenticated viewer.
//
// The guard is advisory. It keeps the UI coherent; the server middleware is
// the security boundary.
func Evaluate(state AuthState, allowed ...core.Role) Decision {
	switch state.Status {
	case StatusUnknown:
		return Decision{Render: RenderLoading}
	case StatusUnauthenticated:
		return Decision{Render: RenderNone, Redirect: RouteLogin}
	}

	if len(allowed) > 0 && !state.Identity.Role.In(allowed...) {
		return Decision{Render: RenderDenied, Redirect: RouteHome}
	}
	return Decision{Render: RenderContent}
}
