package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the map service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP server listens on.
// - ProviderType: The type of geocoding provider to use (nominatim, google).
// - APIKey: The API key for accessing external services (required for Google).
// - ProviderURL: Search endpoint override for Nominatim (self-hosted instances).
// - UserAgent: The header identifying this application to the provider.
// - RateLimit: Provider requests per second, 0 disables throttling.
// - ShutdownTimeout: How long in-flight requests may take to finish on shutdown.
type Config struct {
	Env             string
	Port            int
	ProviderType    string
	APIKey          string
	ProviderURL     string
	UserAgent       string
	RateLimit       int
	ShutdownTimeout time.Duration
}

// envPrefix is prepended to every key, e.g. WAYPOINT_PORT.
const envPrefix = "WAYPOINT"

// MustLoad reads an optional .env file and the WAYPOINT_* environment
// variables and returns the resulting Config. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("provider_type", "nominatim")
	v.SetDefault("provider_key", "")
	v.SetDefault("provider_url", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("rate_limit", "1")
	v.SetDefault("shutdown_timeout", "5s")

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("rate_limit"))
	if err != nil || rateLimit < 0 {
		panic("failed to parse rate limit from configuration, must be a non-negative integer")
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		ProviderType:    v.GetString("provider_type"),
		APIKey:          v.GetString("provider_key"),
		ProviderURL:     v.GetString("provider_url"),
		UserAgent:       v.GetString("user_agent"),
		RateLimit:       rateLimit,
		ShutdownTimeout: shutdownTimeout,
	}
}
