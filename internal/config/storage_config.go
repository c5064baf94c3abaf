package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	storeKindVar   = "PORTAL_STORE"
	profileDirVar  = "PORTAL_PROFILE_DIR"
	redisAddrVar   = "PORTAL_REDIS_ADDR"
	redisPrefixVar = "PORTAL_REDIS_PREFIX"
)

// StoreKind selects the backend that holds the session between runs.
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreFile   StoreKind = "file"
	StoreRedis  StoreKind = "redis"
)

type StorageConfig interface {
	GetStoreKind() StoreKind
	GetProfileDir() string
	GetRedisAddr() string
	GetRedisPrefix() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetStoreKind returns the configured kind as written; storage.Open rejects
// unknown values.
func (Storage) GetStoreKind() StoreKind {
	return StoreKind(strings.ToLower(GetEnv(storeKindVar, string(StoreFile))))
}

func (Storage) GetProfileDir() string {
	return GetEnv(profileDirVar, defaultProfileDir())
}

func (Storage) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (Storage) GetRedisPrefix() string {
	return GetEnv(redisPrefixVar, "school-portal:")
}

func defaultProfileDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "school-portal")
}
