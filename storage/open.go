package storage

import (
	"fmt"

	"github.com/jrsteele09/school-portal/internal/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the Store selected by cfg. The returned close function releases
// any connection the store holds.
func Open(cfg config.StorageConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.GetStoreKind() {
	case config.StoreMemory:
		return NewMemoryStore(), noop, nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
		return NewRedisStore(client, cfg.GetRedisPrefix()), client.Close, nil
	case config.StoreFile:
		s, err := NewFileStore(cfg.GetProfileDir())
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported store kind %q", cfg.GetStoreKind())
}
