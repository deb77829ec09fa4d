package core

import "time"

// User is the persisted credential record.
//
// PasswordHash never leaves the storage/service layer - anything that crosses
// the HTTP boundary is an Identity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the public projection of a User.
//
// This is the "who" attached to authenticated requests and returned to clients.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Identity returns the public view of the user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
