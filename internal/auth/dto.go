package auth

import "github.com/billcollect/billcollect/internal/users"

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Profile is the public subset of a user echoed after login or registration.
type Profile struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// SessionResponse wraps the profile of a freshly bound session.
type SessionResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}

func profileOf(u *users.User) Profile {
	return Profile{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
