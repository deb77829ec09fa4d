package fiber

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/jmolina/warden/core"
	"github.com/jmolina/warden/pkg/logging"
)

// identityKey is the Locals key Authenticate stores the resolved identity under.
const identityKey = "warden_identity"

// Middleware holds the two request gates: Authenticate and RequireRoles.
// Both are read-only with respect to persisted state.
type Middleware struct {
	transport *CookieTransport
	tokens    core.TokenSigner
	auth      core.AuthProvider
	cache     core.Cache // optional, can be nil if caching is disabled
	log       logging.Logger
}

func NewMiddleware(transport *CookieTransport, tokens core.TokenSigner, auth core.AuthProvider, cache core.Cache, log logging.Logger) *Middleware {
	if log == nil {
		log = logging.Nop{}
	}
	return &Middleware{
		transport: transport,
		tokens:    tokens,
		auth:      auth,
		cache:     cache,
		log:       log,
	}
}

// Authenticate extracts and verifies the session token, resolves the subject
// to a live identity, and attaches it to the request. Every failure mode -
// missing cookie, bad signature, expiry, deleted subject - ends the request
// with 401; the response never says which one it was beyond the broad reason.
func (m *Middleware) Authenticate(c fiber.Ctx) error {
	tok := m.transport.Extract(c)
	if tok == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authorized, no token",
		})
	}

	subjectID, err := m.tokens.Verify(tok)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authorized, token failed",
		})
	}

	identity, err := m.resolveIdentity(c, subjectID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			// Subject was deleted after the token was issued.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, user not found",
			})
		}
		m.log.Error(c.Context(), "identity lookup failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
		})
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// RequireRoles authorizes the identity attached by Authenticate against the
// allowed set. The 403 message states the lacking role and nothing else.
func (m *Middleware) RequireRoles(allowed ...core.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil || !identity.Role.In(allowed...) {
			role := "unknown"
			if identity != nil {
				role = identity.Role.String()
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": fmt.Sprintf("User role %s is not authorized to access this route", role),
			})
		}
		return c.Next()
	}
}

// resolveIdentity loads the subject's identity, read-through the cache when
// one is configured. The cache TTL bounds how long a deleted account can keep
// authenticating.
func (m *Middleware) resolveIdentity(c fiber.Ctx, subjectID string) (*core.Identity, error) {
	if m.cache != nil {
		if identity, err := m.cache.Get(subjectID); err == nil && identity != nil {
			return identity, nil
		}
	}

	identity, err := m.auth.FindByID(c.Context(), subjectID)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		// Best effort; a failed cache write never fails the request.
		_ = m.cache.Set(subjectID, identity)
	}
	return identity, nil
}

// IdentityFromCtx returns the identity attached by Authenticate, or nil when
// the request has not passed authentication.
func IdentityFromCtx(c fiber.Ctx) *core.Identity {
	identity, _ := c.Locals(identityKey).(*core.Identity)
	return identity
}
