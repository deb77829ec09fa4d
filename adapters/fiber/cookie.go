package fiber

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// CookieName is the session cookie. Its value is the signed token, opaque to
// page scripts (HTTPOnly) and to the client code in general.
const CookieName = "token"

// clearWindow is how far in the future the overwriting cookie expires on
// Clear. Near-immediate, so the browser discards it promptly regardless of
// client cooperation.
const clearWindow = 10 * time.Second

// CookieTransport maps a session token to and from the HTTP cookie.
type CookieTransport struct {
	ttl    time.Duration
	secure bool
}

// NewCookieTransport builds the transport. ttl must equal the token validity
// window; secure should be true in production deployments.
func NewCookieTransport(ttl time.Duration, secure bool) *CookieTransport {
	return &CookieTransport{ttl: ttl, secure: secure}
}

// Attach sets the session cookie carrying token.
func (t *CookieTransport) Attach(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(t.ttl.Seconds()),
		Expires:  time.Now().Add(t.ttl),
		HTTPOnly: true,
		Secure:   t.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear overwrites the session cookie with a worthless value that expires in
// a few seconds, with the same attributes as Attach.
func (t *CookieTransport) Clear(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "none",
		Path:     "/",
		MaxAge:   int(clearWindow.Seconds()),
		Expires:  time.Now().Add(clearWindow),
		HTTPOnly: true,
		Secure:   t.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Extract reads the session token from the request cookie. An absent cookie
// is not an error; it returns "" meaning no credential supplied.
func (t *CookieTransport) Extract(c fiber.Ctx) string {
	return c.Cookies(CookieName)
}
