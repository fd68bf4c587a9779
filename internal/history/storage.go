package history

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("key not found")
	// ErrInvalidText is returned for record fields that are not valid UTF-8,
	// which JSON could not store unchanged.
	ErrInvalidText = errors.New("text is not valid UTF-8")
)

// Storage is a flat string-keyed store.
type Storage interface {
	Keys(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
