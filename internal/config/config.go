// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for gist-go. Values are layered
// defaults -> config file -> environment -> CLI flags.
package config

import "time"

// Config is the configuration as read from the TOML file. All keys are
// top-level; durations are kept as strings and parsed during Resolve.
type Config struct {
	APIURL    string `toml:"api_url"`
	TokenFile string `toml:"token_file"`
	UserAgent string `toml:"user_agent"`
	Timeout   string `toml:"timeout"`
	LogLevel  string `toml:"log_level"`
}

// Resolved is the effective configuration after every override layer has
// been applied. Paths are expanded and durations parsed.
type Resolved struct {
	ConfigPath string
	APIURL     string
	TokenFile  string
	UserAgent  string
	Timeout    time.Duration
	LogLevel   string
}

// CLIOverrides holds values from command-line flags. Empty strings mean
// "not specified".
type CLIOverrides struct {
	ConfigPath string
	APIURL     string
	TokenFile  string
}
