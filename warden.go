// Package warden is a session-auth library for Go HTTP services: argon2id
// credential storage, signed stateless session tokens carried in an HTTPOnly
// cookie, and role-gated middleware. The root package wires the pieces; the
// subpackages stand alone for callers that want only part of the stack.
package warden

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	wfiber "github.com/jmolina/warden/adapters/fiber"
	"github.com/jmolina/warden/core"
	"github.com/jmolina/warden/pkg/cache"
	"github.com/jmolina/warden/pkg/crypto"
	"github.com/jmolina/warden/pkg/logging"
	"github.com/jmolina/warden/pkg/token"
	"github.com/jmolina/warden/services"
)

// interfaces
type (
	UserStorage  = core.UserStorage
	AuthProvider = core.AuthProvider
	TokenSigner  = core.TokenSigner
	Cache        = core.Cache

	PasswordHandler = crypto.PasswordHandler
	Logger          = logging.Logger
)

// structs
type (
	User        = core.User
	Identity    = core.Identity
	Role        = core.Role
	CacheConfig = core.CacheConfig
	CacheStats  = core.CacheStats
)

const (
	RoleUser  = core.RoleUser
	RoleAdmin = core.RoleAdmin
)

const (
	defaultBasePath  = "/api/auth"
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache = cache.NewInMemoryCache
	NewMemoryStorage = services.NewMemoryStorage
	NewArgon2        = crypto.NewArgon2
	ParseRole        = core.ParseRole
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrUnknownRole        = core.ErrUnknownRole
)

var (
	ErrNoToken       = core.ErrNoToken
	ErrTokenExpired  = core.ErrTokenExpired
	ErrTokenInvalid  = core.ErrTokenInvalid
	ErrCacheNotFound = core.ErrCacheNotFound
)

var (
	ErrEmailRequired    = core.ErrEmailRequired
	ErrInvalidEmail     = core.ErrInvalidEmail
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrSecretRequired  = core.ErrSecretRequired
	ErrSecretTooShort  = core.ErrSecretTooShort
)

// Config configures New. Secret and Storage are required; everything else has
// a working default.
type Config struct {
	// Secret signs session tokens. Minimum 32 characters.
	Secret string

	// Storage persists user records.
	Storage core.UserStorage

	// TokenTTL is the session lifetime. Defaults to one hour.
	TokenTTL time.Duration

	// PasswordHasher defaults to argon2id.
	PasswordHasher crypto.PasswordHandler

	// CacheAdapter, when set, caches resolved identities between requests.
	// Off by default: a cached identity survives account deletion until its
	// TTL runs out, so enable it only when that staleness window is
	// acceptable. The adapter drops a subject's entry on register, login,
	// and logout.
	CacheAdapter core.Cache

	// BasePath prefixes the mounted routes. Defaults to /api/auth.
	BasePath string

	// Secure sets the Secure cookie attribute. Enable in production.
	Secure bool

	Log logging.Logger
}

// Warden holds the assembled auth stack.
type Warden struct {
	Auth    *services.AuthService
	Tokens  *token.Signer
	Adapter *wfiber.Adapter
}

// New validates the config, assembles the service, signer, and Fiber adapter,
// and mounts the auth routes on app.
func New(app *fiber.App, config Config) (*Warden, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}

	// Set Defaults

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	log := config.Log
	if log == nil {
		log = logging.Nop{}
	}

	auth := services.NewAuthService(config.Storage, passwordHasher)
	signer := token.NewSigner([]byte(config.Secret), config.TokenTTL)

	adapter := wfiber.New(app, wfiber.Config{
		Auth:     auth,
		Tokens:   signer,
		TokenTTL: signer.TTL(),
		Cache:    config.CacheAdapter,
		Log:      log,
		BasePath: basePath,
		Secure:   config.Secure,
	})
	adapter.RegisterRoutes()

	return &Warden{
		Auth:    auth,
		Tokens:  signer,
		Adapter: adapter,
	}, nil
}
