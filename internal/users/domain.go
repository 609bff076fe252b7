package users

import "time"

// DevUserID identifies the account bound to every session in dev auth mode.
const DevUserID = "dev-user"

// User is an identity record and the root of tenancy: every customer, bill,
// expense and employee row carries the id of exactly one User.
type User struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email"`
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	PasswordHash    *string   `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// DevUser returns the fixed development account.
func DevUser() User {
	email := "dev@example.com"
	first := "Development"
	last := "User"
	return User{ID: DevUserID, Email: &email, FirstName: &first, LastName: &last}
}
