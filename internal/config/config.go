package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	GatewayConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetMetricsFile() string
}

type mainConfig struct {
	EnvVars
	Gateway
	Storage
}

var loadOnce sync.Once

// New loads an optional .env file from the working directory and returns a
// Config whose getters read the environment on every call.
func New() Config {
	loadOnce.Do(func() {
		_ = godotenv.Load()
		viper.AutomaticEnv()
		setDefaults()
	})
	return mainConfig{}
}

func setDefaults() {
	viper.SetDefault(appNameVar, "School Portal")
	viper.SetDefault(envVar, "DEV")
	viper.SetDefault(logLevelVar, "info")

	viper.SetDefault(baseURLVar, "http://localhost:5000")
	viper.SetDefault(apiPrefixVar, "/api/v1")
	viper.SetDefault(loginRouteVar, "/")

	viper.SetDefault(storeKindVar, string(StoreFile))
	viper.SetDefault(profileDirVar, defaultProfileDir())
	viper.SetDefault(redisAddrVar, "localhost:6379")
	viper.SetDefault(redisPrefixVar, "school-portal:")
}
