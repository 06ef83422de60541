package domain

import "time"

// User is the domain model for registered accounts. Username and email are
// each globally unique; the password is stored only as a bcrypt hash.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicView strips credentials before the user crosses the API boundary.
func (u *User) PublicView() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
