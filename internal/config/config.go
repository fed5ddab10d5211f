// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `envDefault:"value"` - set a default value
//
// Command line flags override a subset of these values (see main.go).
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"GleamSolver"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// Campaign configuration
	// ============================================================
	// CampaignURL is the contest page to solve.
	CampaignURL string `env:"CAMPAIGN_URL"`
	ProfilePath string `env:"PROFILE_PATH" envDefault:"config/solver.yaml"`
	// WatchProfile reloads the profile when the file changes.
	WatchProfile bool `env:"WATCH_PROFILE" envDefault:"true"`

	// ============================================================
	// Browser configuration
	// ============================================================
	// DebuggerURL attaches to a running Chrome instead of launching one.
	DebuggerURL        string `env:"CHROME_DEBUGGER_URL"`
	ChromeBin          string `env:"CHROME_BIN"`
	ChromeUserDataDir  string `env:"CHROME_USER_DATA_DIR"`
	Headless           bool   `env:"CHROME_HEADLESS" envDefault:"false"`
	NavigationTimeoutS int    `env:"CHROME_NAVIGATION_TIMEOUT_SECONDS" envDefault:"30"`

	// ============================================================
	// Redis configuration
	// ============================================================
	// Without RedisHost the notification set and the membership
	// snapshots stay in memory.
	RedisHost       string `env:"REDIS_HOST"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OtelEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"gleam-solver"`
}

// RedisEnabled reports whether a redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the redis address.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
