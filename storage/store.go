// Package storage keeps small JSON blobs under fixed keys.
package storage

import (
	"context"
	"errors"
)

// Keys used by the application.
const (
	KeySavedLocations = "savedLocations"
	KeyPreferences    = "userPreferences"
)

var ErrNotFound = errors.New("key not found")

// Store is a key-value blob store. Put overwrites the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
