// Package fiber adapts the auth core to HTTP using Fiber. It owns the cookie
// transport, the authenticate/authorize gates, and the route table.
package fiber

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/jmolina/warden/core"
	"github.com/jmolina/warden/pkg/logging"
)

// Config wires the adapter's collaborators.
type Config struct {
	Auth     core.AuthProvider
	Tokens   core.TokenSigner
	TokenTTL time.Duration

	// Cache, when set, serves identity lookups between requests. The adapter
	// drops a subject's entry on register, login, and logout; between those
	// points the cache TTL bounds how stale an identity can be.
	Cache core.Cache

	Log      logging.Logger
	BasePath string // defaults to /api/auth
	Secure   bool   // Secure cookie attribute, true in production
}

type Adapter struct {
	app       *fiber.App
	auth      core.AuthProvider
	tokens    core.TokenSigner
	transport *CookieTransport
	mw        *Middleware
	cache     core.Cache
	basePath  string
	log       logging.Logger
}

func New(app *fiber.App, cfg Config) *Adapter {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api/auth"
	}
	log := cfg.Log
	if log == nil {
		log = logging.Nop{}
	}

	transport := NewCookieTransport(cfg.TokenTTL, cfg.Secure)

	return &Adapter{
		app:       app,
		auth:      cfg.Auth,
		tokens:    cfg.Tokens,
		transport: transport,
		mw:        NewMiddleware(transport, cfg.Tokens, cfg.Auth, cfg.Cache, log),
		cache:     cfg.Cache,
		basePath:  basePath,
		log:       log,
	}
}

// Middleware exposes the request gates so applications can protect their own
// routes with the same authenticate/authorize pair.
func (a *Adapter) Middleware() *Middleware {
	return a.mw
}

// RegisterRoutes mounts the auth endpoints under the base path.
func (a *Adapter) RegisterRoutes() {
	api := a.app.Group(a.basePath)

	// Public routes
	api.Post("/register", a.handleRegister)
	api.Post("/login", a.handleLogin)

	// Protected routes. Gates run in registration order, ahead of the handler.
	api.Post("/logout", a.mw.Authenticate, a.handleLogout)
	api.Get("/me", a.mw.Authenticate, a.handleMe)

	// Role-gated payloads
	api.Get("/admin-data", a.mw.Authenticate, a.mw.RequireRoles(core.RoleAdmin), a.handleAdminData)
	api.Get("/user-data", a.mw.Authenticate, a.mw.RequireRoles(core.RoleUser, core.RoleAdmin), a.handleUserData)
}
