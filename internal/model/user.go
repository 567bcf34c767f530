package model

import "time"

// User is an account that owns bookmarks, adhan settings and a session.
type User struct {
	ID             int       `db:"id"              json:"id"`
	Email          string    `db:"email"           json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Name           *string   `db:"name"            json:"name,omitempty"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}
