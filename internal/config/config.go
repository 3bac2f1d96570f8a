// Package config centralizes environment bootstrap shared by the CLI
// and the servers: .env loading, env var helpers, AWS config with
// tracing middleware, and Secrets Manager hydration.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory when present.
// A missing file is not an error; deployed environments set variables
// directly. Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// EnvOr returns the environment variable's value, or fallback when
// unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvInt returns the environment variable parsed as an int, or
// fallback when unset or malformed.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
