// Package models defines the server-side records persisted in the database
// and the identity resolved for each authenticated request.
package models

import "time"

// User is a registered account. Users are immutable after registration.
type User struct {
	ID           int64
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Identity is the caller established by the authorization guard for the
// duration of one request. It is never persisted.
type Identity struct {
	UserID   int64
	UserName string
}

// Owns reports whether the identity is the recorded owner of a resource.
func (i Identity) Owns(ownerID int64) bool {
	return i.UserID == ownerID
}
