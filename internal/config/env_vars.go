package config

import (
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"
)

type EnvVars struct{ source }

var _ EnvConfig = EnvVars{}

// GetPort returns the console listen address, always prefixed with ':' when only a port is given.
func (e EnvVars) GetPort() string {
	return listenAddr(e.get(portEnvVar, "8080"))
}

func (e EnvVars) GetAppName() string {
	return e.get(appNameVar, "Billing Console")
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.get(envVar, "DEV"))
}

func (e EnvVars) GetLogLevel() string {
	return e.get(logLevelEnvVar, "info")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func listenAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
