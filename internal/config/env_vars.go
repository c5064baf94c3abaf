package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelVar    = "PORTAL_LOG_LEVEL"
	metricsFileVar = "PORTAL_METRICS_FILE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "School Portal")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

// GetMetricsFile is where the CLI writes its gateway counters on exit, in
// the Prometheus text format. Empty disables the export.
func (EnvVars) GetMetricsFile() string {
	return GetEnv(metricsFileVar, "")
}

// GetEnv returns the value viper resolves for envVar, or defaultValue when it
// is unset or empty.
func GetEnv(envVar, defaultValue string) string {
	value := viper.GetString(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
