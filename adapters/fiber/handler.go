package fiber

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/jmolina/warden/core"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates the account, signs a session token, and sets the
// cookie so the new user is logged in immediately.
func (a *Adapter) handleRegister(c fiber.Ctx) error {
	var input credentialsInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	identity, err := a.auth.Register(c.Context(), input.Email, input.Password)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	a.invalidate(identity.ID)
	if err := a.issueSession(c, identity.ID); err != nil {
		return a.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    identity,
	})
}

// handleLogin verifies credentials and establishes a fresh session. Each
// login mints an independent token; concurrent logins for the same user are
// all valid until their own expiry.
func (a *Adapter) handleLogin(c fiber.Ctx) error {
	var input credentialsInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	identity, err := a.auth.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	a.invalidate(identity.ID)
	if err := a.issueSession(c, identity.ID); err != nil {
		return a.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged in successfully",
		"user":    identity,
	})
}

// handleLogout clears the cookie and drops the subject's cached identity. It
// sits behind Authenticate, so an unauthenticated call never reaches here.
func (a *Adapter) handleLogout(c fiber.Ctx) error {
	if identity := IdentityFromCtx(c); identity != nil {
		a.invalidate(identity.ID)
	}
	a.transport.Clear(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// handleMe returns the authenticated identity. This is the client's
// "who am I" probe on page load.
func (a *Adapter) handleMe(c fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authorized, no token",
		})
	}
	return c.Status(fiber.StatusOK).JSON(identity)
}

func (a *Adapter) handleAdminData(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Welcome to the Admin Data!",
		"data":    "Sensitive admin information accessible only to administrators.",
	})
}

func (a *Adapter) handleUserData(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Welcome to the User Data!",
		"data":    "Personal user information accessible to authenticated users.",
	})
}

// invalidate drops the subject's cached identity so the next authenticated
// request re-resolves it from storage.
func (a *Adapter) invalidate(subjectID string) {
	if a.cache != nil {
		_ = a.cache.Delete(subjectID)
	}
}

// issueSession mints a token for the subject and attaches it as the cookie.
func (a *Adapter) issueSession(c fiber.Ctx, subjectID string) error {
	tok, err := a.tokens.Issue(subjectID)
	if err != nil {
		return err
	}
	a.transport.Attach(c, tok)
	return nil
}

// handleAuthError maps service errors to HTTP responses. Typed failures get
// their canonical client-facing wording; anything unexpected is logged in
// full server-side and reported generically.
func (a *Adapter) handleAuthError(c fiber.Ctx, err error) error {
	status, message := statusForError(err)
	if status == fiber.StatusInternalServerError {
		return a.internalError(c, err)
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func (a *Adapter) internalError(c fiber.Ctx, err error) error {
	a.log.Error(c.Context(), "request failed", "error", err, "method", c.Method(), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server Error",
	})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrUserExists):
		return fiber.StatusBadRequest, "User already exists"
	case errors.Is(err, core.ErrInvalidCredentials):
		return fiber.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, core.ErrEmailRequired):
		return fiber.StatusBadRequest, "Email is required"
	case errors.Is(err, core.ErrInvalidEmail):
		return fiber.StatusBadRequest, "Please use a valid email address"
	case errors.Is(err, core.ErrPasswordRequired):
		return fiber.StatusBadRequest, "Password is required"
	case errors.Is(err, core.ErrPasswordTooShort):
		return fiber.StatusBadRequest, "Password must be at least 6 characters"
	case errors.Is(err, core.ErrUserNotFound):
		return fiber.StatusNotFound, "User not found"
	case errors.Is(err, core.ErrNoToken),
		errors.Is(err, core.ErrTokenExpired),
		errors.Is(err, core.ErrTokenInvalid):
		return fiber.StatusUnauthorized, "Not authorized"
	default:
		return fiber.StatusInternalServerError, "Server Error"
	}
}
