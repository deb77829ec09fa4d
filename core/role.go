package core

// Role is the closed set of authorization levels. Anything outside the two
// declared constants is rejected at the edges (ParseRole) so a typo'd role
// string can never reach an authorization check.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned to every newly registered user.
const DefaultRole = RoleUser

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// In reports whether the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
