package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash; it never leaves the application layer.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author is the subset of User embedded in public blog payloads.
// Credential fields deliberately have no place here.
type Author struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u *User) AsAuthor() Author {
	return Author{FirstName: u.FirstName, LastName: u.LastName}
}
