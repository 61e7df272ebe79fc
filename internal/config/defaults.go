package config

// Version is reported in the default User-Agent.
const Version = "0.1.0"

// Default values: layer 0 of the override chain.
const (
	defaultAPIURL   = "https://api.github.com"
	defaultTimeout  = "30s"
	defaultLogLevel = "info"
)

// DefaultUserAgent identifies the client on every request.
const DefaultUserAgent = "gist-go/" + Version

// DefaultConfig returns a Config populated with all default values. It is
// the starting point for TOML decoding, so unset keys keep their defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:    defaultAPIURL,
		TokenFile: DefaultTokenPath(),
		UserAgent: DefaultUserAgent,
		Timeout:   defaultTimeout,
		LogLevel:  defaultLogLevel,
	}
}
