// Package store holds the user document store of the auth/profile
// service.  Two implementations exist: a Redis-backed store for normal
// operation and an in-memory stand-in used by tests and as a best-effort
// fallback when Redis is unreachable in non-production environments.
package store

import (
	"context"
	"errors"
)

var (
	// ErrUserExists is returned when creating a user whose username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user cannot be located.
	ErrUserNotFound = errors.New("user not found")
)

// User is the document persisted per account.  Only the hash of the
// password is ever stored.
type User struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	Disabled       bool   `json:"disabled"`
}

// Store abstracts user persistence.  Rename moves a document to a new
// username key and must fail with ErrUserExists when the target is taken.
type Store interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, username string) (User, error)
	UpdateUser(ctx context.Context, u User) error
	Rename(ctx context.Context, oldName, newName string) error
	Ping(ctx context.Context) error
}
