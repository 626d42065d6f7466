// Package session persists the snapshot of the logged-in user between runs.
//
// There is exactly one logical slot. Writes overwrite it (last writer wins)
// and nothing expires on its own: the snapshot lives until Clear.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
)

// Store is the session slot.
type Store interface {
	// Get returns (nil, nil) when nobody is logged in.
	Get(ctx context.Context) (*models.User, error)
	Set(ctx context.Context, u models.User) error
	Clear(ctx context.Context) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown session backend")

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Path      string
	RedisAddr string
	RedisKey  string
}

// Open builds the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisAddr, opts.RedisKey)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
