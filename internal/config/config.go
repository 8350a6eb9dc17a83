package config

import (
	"os"
)

type Config struct {
	Port          string
	GinMode       string
	SessionSecret string
	// CachePath is the sqlite file backing the local durable cache.
	CachePath string
	// KVRestAPIURL and KVRestAPIToken configure the remote key-value
	// mirror. Leaving either empty selects local-only mode.
	KVRestAPIURL   string
	KVRestAPIToken string
	// DefaultPassword is assigned to imported users that arrive without
	// a password; they are forced through the change flow on first login.
	DefaultPassword string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		CachePath:       getEnv("CACHE_PATH", "taskdata.db"),
		KVRestAPIURL:    getEnv("KV_REST_API_URL", ""),
		KVRestAPIToken:  getEnv("KV_REST_API_TOKEN", ""),
		DefaultPassword: getEnv("DEFAULT_PASSWORD", "123456"),
	}
}

// RemoteConfigured reports whether the remote mirror credentials are
// present. Their absence is the documented local-only mode, not an
// error.
func (c *Config) RemoteConfigured() bool {
	return c.KVRestAPIURL != "" && c.KVRestAPIToken != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
