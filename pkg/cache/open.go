package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	URL      string `toml:"url"`
	Database string `toml:"database"`
}

// Open returns the backend named by cfg.Backend. An empty backend is "file"
// when Dir is set and "none" otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache needs a directory")
		}
		return nonNil(NewFileCache(cfg.Dir))
	case BackendRedis:
		return nonNil(NewRedisCache(ctx, cfg.URL))
	case BackendMongo:
		db := cfg.Database
		if db == "" {
			db = "chartlayout"
		}
		return nonNil(NewMongoCache(ctx, cfg.URL, db))
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// nonNil keeps a failed constructor's typed nil out of the interface.
func nonNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
