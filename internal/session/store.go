// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Store kinds accepted by NewStore.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// StoreConfig selects and configures the session backend.
type StoreConfig struct {
	Kind        string
	DB          *sql.DB // used by the sqlite store
	RedisURL    string
	RedisPrefix string
}

// Store is an scs.Store that can be shut down.
type Store interface {
	scs.Store
	Close() error
}

// NewStore opens the session backend named by cfg.Kind.
func NewStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Kind {
	case StoreSQLite, "":
		if cfg.DB == nil {
			return nil, fmt.Errorf("sqlite session store requires a database")
		}
		return sqliteStore{sqlite3store.New(cfg.DB)}, nil
	case StoreMemory:
		return memoryStore{memstore.New()}, nil
	case StoreRedis:
		return NewRedisStore(ctx, RedisStoreOptions{URL: cfg.RedisURL, Prefix: cfg.RedisPrefix})
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Kind)
	}
}

type sqliteStore struct {
	*sqlite3store.SQLite3Store
}

func (s sqliteStore) Close() error {
	s.StopCleanup()
	return nil
}

type memoryStore struct {
	*memstore.MemStore
}

func (s memoryStore) Close() error {
	s.StopCleanup()
	return nil
}
