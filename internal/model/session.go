package model

import "time"

type Session struct {
	Token    string
	IssuedAt time.Time
	// User is the cached snapshot taken at login or at the last profile load.
	// It is nil when the snapshot is missing or unreadable.
	User *User
	// ExpiresAt is read from the token when it carries an exp claim. The
	// backend's 401 stays the only authority on validity.
	ExpiresAt time.Time
}
