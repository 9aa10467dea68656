// Package objectstore puts uploaded files somewhere a browser can fetch them.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mx-space/folio/internal/config"
)

// Store persists an object under key and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// New builds the store selected by cfg.Storage.Driver, scoped to
// cfg.Storage.BucketPrefix when one is set.
func New(cfg *config.AppConfig) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Storage.Driver {
	case config.StorageS3:
		store, err = NewS3(cfg.Storage.S3)
	case config.StorageLocal, "":
		store = NewLocal(cfg.StaticDir(), LocalURLPrefix)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return WithPrefix(store, cfg.Storage.BucketPrefix), nil
}

// Prefixed puts every object under a fixed key prefix.
type Prefixed struct {
	Store
	prefix string
}

// WithPrefix returns store unchanged when prefix is empty.
func WithPrefix(store Store, prefix string) Store {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return store
	}
	return &Prefixed{Store: store, prefix: prefix}
}

func (p *Prefixed) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	return p.Store.Put(ctx, p.prefix+"/"+strings.TrimLeft(key, "/"), body, size, contentType)
}

// LocalRoot returns the directory of a local store, looking through a prefix.
func LocalRoot(store Store) (string, bool) {
	if p, ok := store.(*Prefixed); ok {
		store = p.Store
	}
	local, ok := store.(*Local)
	if !ok {
		return "", false
	}
	return local.Root(), true
}
