package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	baseURLVar     = "BASE_URL"
	dbPathEnvVar   = "DB_PATH"
	logLevelEnvVar = "LOG_LEVEL"
	envEnvVar      = "ENV"

	// EnvProduction is the ENV value that switches on production-only behaviour
	// such as Secure cookies.
	EnvProduction = "PROD"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Lab Diagnostics")
}

// GetBaseURL returns the public base URL of the site (e.g., "https://lab.kz").
// Used for absolute links in the sitemap; empty means derive it from the request.
func (EnvVars) GetBaseURL() string {
	return strings.TrimSuffix(GetEnv(baseURLVar, ""), "/")
}

func (EnvVars) GetDBPath() string {
	return GetEnv(dbPathEnvVar, "./data/site.db")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(envEnvVar)
	if env == "" {
		return "DEV"
	}
	return strings.ToUpper(env)
}

func (e EnvVars) IsProduction() bool {
	return e.GetEnv() == EnvProduction
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvFloat parses a float env var, falling back to defaultValue when unset or malformed.
func GetEnvFloat(envVar string, defaultValue float64) float64 {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
