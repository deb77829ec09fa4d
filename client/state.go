package client

import (
	"context"
	"errors"
	"sync"

	"github.com/jmolina/warden/core"
)

// Status is the client's view of whether it is logged in.
type Status int

const (
	// StatusUnknown holds from construction until the first whoami round
	// trip resolves. The UI renders a neutral loading state and must not
	// navigate while here.
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

// AuthState is a snapshot of the state machine. Identity is non-nil exactly
// when Status is StatusAuthenticated. It lives only as long as the process;
// the cookie is the only durable credential.
type AuthState struct {
	Status   Status
	Identity *core.Identity
}

// GenericErrorMessage is shown when the server could not be reached at all.
// Transport details are never surfaced to the user.
const GenericErrorMessage = "Something went wrong. Please try again."

// ErrActionInFlight is returned when the same action is re-submitted while
// its round trip is still outstanding. The UI disables the button; this is
// the backstop.
var ErrActionInFlight = errors.New("action already in flight")

type action int

const (
	actionInit action = iota
	actionLogin
	actionRegister
	actionLogout
)

// Manager is the client-side auth-state machine. All mutations funnel through
// one queue (ops), so a logout racing a login resolves to whichever applied
// last rather than a lost update; re-submission of an in-flight action is
// rejected outright.
type Manager struct {
	api API
	nav Navigator

	ops sync.Mutex // serializes mutating round trips

	mu       sync.Mutex // guards state and inFlight
	state    AuthState
	inFlight map[action]bool

	initOnce sync.Once
}

func NewManager(api API, nav Navigator) *Manager {
	return &Manager{
		api:      api,
		nav:      nav,
		state:    AuthState{Status: StatusUnknown},
		inFlight: make(map[action]bool),
	}
}

// State returns the current snapshot.
func (m *Manager) State() AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether any auth action is outstanding.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inFlight) > 0
}

// Init resolves the initial Unknown state with a whoami round trip. It runs
// at most once per Manager; later calls are no-ops.
func (m *Manager) Init(ctx context.Context) {
	m.initOnce.Do(func() {
		_ = m.run(actionInit, func() {
			identity, err := m.api.Me(ctx)
			if err != nil {
				// Any failure - network or non-2xx - resolves to logged out.
				m.setState(AuthState{Status: StatusUnauthenticated})
				return
			}
			m.setState(AuthState{Status: StatusAuthenticated, Identity: identity})
		})
	})
}

// Login authenticates and, on success, navigates to the role-dependent
// landing page. The returned error carries the user-facing message.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	var outcome error
	err := m.run(actionLogin, func() {
		identity, err := m.api.Login(ctx, email, password)
		if err != nil {
			m.setState(AuthState{Status: StatusUnauthenticated})
			outcome = userFacing(err)
			return
		}
		m.setState(AuthState{Status: StatusAuthenticated, Identity: identity})
		m.nav.Navigate(landingRoute(identity.Role))
	})
	if err != nil {
		return err
	}
	return outcome
}

// Register creates the account and, on success, navigates to the dashboard
// regardless of role.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	var outcome error
	err := m.run(actionRegister, func() {
		identity, err := m.api.Register(ctx, email, password)
		if err != nil {
			m.setState(AuthState{Status: StatusUnauthenticated})
			outcome = userFacing(err)
			return
		}
		m.setState(AuthState{Status: StatusAuthenticated, Identity: identity})
		m.nav.Navigate(RouteDashboard)
	})
	if err != nil {
		return err
	}
	return outcome
}

// Logout tells the server to clear the cookie, best effort: even when the
// round trip fails the local state drops to Unauthenticated and the client
// navigates to the login entry point.
func (m *Manager) Logout(ctx context.Context) {
	_ = m.run(actionLogout, func() {
		_ = m.api.Logout(ctx)
		m.setState(AuthState{Status: StatusUnauthenticated})
		m.nav.Navigate(RouteLogin)
	})
}

// run rejects re-submission of an in-flight action, then applies fn under the
// single mutation queue.
func (m *Manager) run(a action, fn func()) error {
	m.mu.Lock()
	if m.inFlight[a] {
		m.mu.Unlock()
		return ErrActionInFlight
	}
	m.inFlight[a] = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.inFlight, a)
		m.mu.Unlock()
	}()

	m.ops.Lock()
	defer m.ops.Unlock()
	fn()
	return nil
}

func (m *Manager) setState(s AuthState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// userFacing maps an error to what the form shows: the server's reason
// verbatim, or the generic retry message for transport failures.
func userFacing(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return errors.New(GenericErrorMessage)
}
