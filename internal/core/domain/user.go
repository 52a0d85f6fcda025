package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models a registered account. The password hash never leaves the
// process: it is excluded from JSON and services expose Safe() views.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Telephone    string    `json:"telephone,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// SafeView is the subset of user fields exposed in API responses.
type SafeView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Safe returns the response-safe projection of the user.
func (u *User) Safe() SafeView {
	return SafeView{Username: u.Username, Email: u.Email}
}
