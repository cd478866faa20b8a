// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults first, then optional YAML file, then environment variables.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the ops HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RiotAPIKey authenticates calls against the Riot API.
	RiotAPIKey string `koanf:"riot_api_key"`

	// PlatformHost serves spectator and league endpoints, e.g. euw1.
	PlatformHost string `koanf:"platform_host"`

	// RegionalHost serves account and match endpoints, e.g. europe.
	RegionalHost string `koanf:"regional_host"`

	// DDragonHost serves the champion catalog and icons.
	DDragonHost string `koanf:"ddragon_host"`

	// DDragonVersion pins the Data Dragon champion catalog version.
	DDragonVersion string `koanf:"ddragon_version"`

	// WebhookURL is the chat channel webhook notifications go to.
	WebhookURL string `koanf:"webhook_url"`

	// DatabasePath locates the SQLite registry database.
	DatabasePath string `koanf:"database_path"`

	// PollIntervalSeconds is the fixed sweep interval.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// RequestTimeoutSeconds bounds each outbound Riot API call so one slow
	// player cannot stall the sequential sweep.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds"`

	// DigestHour and DigestMinute schedule the daily digest in Timezone.
	DigestHour   int    `koanf:"digest_hour"`
	DigestMinute int    `koanf:"digest_minute"`
	Timezone     string `koanf:"timezone"`

	// MatchGuardSize bounds the reported-match dedupe guard.
	MatchGuardSize int `koanf:"match_guard_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8080",
		PlatformHost:          "https://euw1.api.riotgames.com",
		RegionalHost:          "https://europe.api.riotgames.com",
		DDragonHost:           "https://ddragon.leagueoflegends.com",
		DDragonVersion:        "14.10.1",
		DatabasePath:          "riftwatch.db",
		PollIntervalSeconds:   60,
		RequestTimeoutSeconds: 5,
		DigestHour:            9,
		DigestMinute:          0,
		Timezone:              "Europe/Paris",
		MatchGuardSize:        4096,
		MaxLeaderboardLimit:   100,
	}
}
