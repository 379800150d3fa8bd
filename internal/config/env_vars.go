package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	appDomainVar  = "APP_DOMAIN"
	dbPathEnvVar  = "DB_PATH"
	jwtSecretVar  = "JWT_SECRET"
	defaultSecret = "secret_token"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppDomain() string
	GetDBPath() string
	GetJWTSecret() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Contacts Server")
}

// GetAppDomain returns the public base URL used to build reset-password links.
func (EnvVars) GetAppDomain() string {
	return GetEnv(appDomainVar, "http://localhost:3000")
}

func (EnvVars) GetDBPath() string {
	return GetEnv(dbPathEnvVar, "./data/contacts.db")
}

// GetJWTSecret returns the reset-token signing secret. The fallback is for
// development only and must be overridden in production deployments.
func (EnvVars) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, defaultSecret)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
