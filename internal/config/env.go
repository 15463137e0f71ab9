// Package config holds environment lookups and sandbox tunables.
package config

import (
	"os"
	"strconv"
)

// Environment variables read by the commands.
const (
	EnvSSHHost    = "COLLIDE_SSH_HOST"
	EnvSSHPort    = "COLLIDE_SSH_PORT"
	EnvSSHHostKey = "COLLIDE_SSH_HOST_KEY"
	EnvSSHIdle    = "COLLIDE_SSH_IDLE_SECONDS"
	EnvLogLevel   = "COLLIDE_LOG_LEVEL"
	EnvLogFile    = "COLLIDE_LOG_FILE"
	EnvScene      = "COLLIDE_SCENE"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integers. Unparsable values yield fallback.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
