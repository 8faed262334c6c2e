package domain

import "time"

// User represents a domain user object
type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	PhotoURL    string
	IsAdmin     bool
	Provider    string
	CreatedAt   time.Time
}

// NewUser creates a new User instance
func NewUser(id, username, email string) *User {
	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Provider:  "local",
		CreatedAt: time.Now().UTC(),
	}
}
