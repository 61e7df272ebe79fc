package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig    = "GIST_GO_CONFIG"
	EnvAPIURL    = "GIST_GO_API_URL"
	EnvTokenFile = "GIST_GO_TOKEN_FILE"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath string // GIST_GO_CONFIG
	APIURL     string // GIST_GO_API_URL
	TokenFile  string // GIST_GO_TOKEN_FILE
}

// ReadEnvOverrides reads the override variables. Unset and empty are
// treated the same.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		APIURL:     os.Getenv(EnvAPIURL),
		TokenFile:  os.Getenv(EnvTokenFile),
	}
}
