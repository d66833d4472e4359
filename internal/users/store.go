package users

import (
	"context"
	"errors"
)

var ErrStorageCorrupt = errors.New("user storage corrupt")

// Store persists the whole user collection at once.
type Store interface {
	Load(ctx context.Context) ([]User, error)
	Save(ctx context.Context, users []User) error
}
