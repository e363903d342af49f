package entity

import "time"

// User is a registered member of the community. PasswordHash holds a bcrypt
// hash, never the plain password.
type User struct {
	Name         string `validate:"required,min=3,max=64"`
	PasswordHash string `validate:"required"`
	CreatedAt    time.Time
}

// Session represents one authenticated login. The token is the bearer
// credential handed to the client.
type Session struct {
	Token     string `validate:"required"`
	UserName  string `validate:"required"`
	ExpiresAt time.Time
}

// Post is a single community post.
type Post struct {
	ID        string `validate:"required,uuid4"`
	Author    string `validate:"required"`
	Title     string `validate:"required,max=200"`
	Body      string `validate:"required"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
