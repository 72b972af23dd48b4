package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// ErrConflictingSources is returned when both a data directory and a data URL are configured.
var ErrConflictingSources = errors.New("data_dir and data_url are mutually exclusive")

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.dataDirSet && c.DataURL != "" {
		return ErrConflictingSources
	}
	if c.DataURL != "" {
		u, err := url.Parse(c.DataURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("data_url must be an http(s) URL, got %q", c.DataURL)
		}
	}
	if c.DataTimeout < 0 {
		return fmt.Errorf("data_timeout must not be negative, got %s", c.DataTimeout)
	}
	if !slices.Contains([]string{OutputAuto, OutputText, OutputMarkdown, OutputJSON}, c.Output) {
		return fmt.Errorf("unknown output format %q (want auto, text, markdown or json)", c.Output)
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	if c.UI.SessionTTL < 0 {
		return fmt.Errorf("ui.session_ttl must not be negative, got %s", c.UI.SessionTTL)
	}
	return nil
}
