package core

import "errors"

// User errors
var (
	ErrUserExists         = errors.New("user already exists")  // 400 Bad Request
	ErrUserNotFound       = errors.New("user not found")       // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid credentials")  // 400 Bad Request
	ErrUnknownRole        = errors.New("unknown role")         // 500
)

// Token errors. Callers must collapse both into "not authenticated" when
// talking to the end user.
var (
	ErrNoToken      = errors.New("no token supplied")      // 401
	ErrTokenExpired = errors.New("session token expired")  // 401
	ErrTokenInvalid = errors.New("invalid session token")  // 401
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")      // 400
	ErrInvalidEmail     = errors.New("invalid email format")   // 400
	ErrPasswordRequired = errors.New("password is required")   // 400
	ErrPasswordTooShort = errors.New("password is too short")  // 400
)

// Cache errors
var (
	ErrCacheNotFound = errors.New("identity not found in cache")
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("user storage is required") // 500
	ErrSecretRequired  = errors.New("secret is required")       // 500
	ErrSecretTooShort  = errors.New("secret too short")         // 500
)
