package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	minTimeout = 1 * time.Second
	maxTimeout = 10 * time.Minute
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks all configuration values and returns every error found,
// joined, so one run reports them all.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateAPIURL(cfg.APIURL)...)

	if strings.TrimSpace(cfg.TokenFile) == "" {
		errs = append(errs, errors.New("token_file: must not be empty"))
	}

	if strings.TrimSpace(cfg.UserAgent) == "" {
		errs = append(errs, errors.New("user_agent: must not be empty"))
	}

	errs = append(errs, validateTimeout(cfg.Timeout)...)

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", cfg.LogLevel))
	}

	return errors.Join(errs...)
}

func validateAPIURL(raw string) []error {
	u, err := url.Parse(raw)
	if err != nil {
		return []error{fmt.Errorf("api_url: %w", err)}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return []error{fmt.Errorf("api_url: scheme must be http or https, got %q", raw)}
	}

	if u.Host == "" {
		return []error{fmt.Errorf("api_url: missing host in %q", raw)}
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return []error{fmt.Errorf("api_url: must not carry a query or fragment, got %q", raw)}
	}

	return nil
}

func validateTimeout(value string) []error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("timeout: invalid duration %q: %w", value, err)}
	}

	if d < minTimeout || d > maxTimeout {
		return []error{fmt.Errorf("timeout: must be between %s and %s, got %s", minTimeout, maxTimeout, value)}
	}

	return nil
}
