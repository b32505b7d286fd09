package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Load when no blob exists under the key.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is the persistence adapter the state stores write through to.
// Each store owns a fixed key and serializes its whole collection into
// one blob under it.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// Pinger exposes the health-check surface of a backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
