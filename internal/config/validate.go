package config

import (
	"fmt"
	"strings"
)

var validLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

var validFormats = map[string]struct{}{
	"console": {}, "json": {},
}

// Validate reports the first configuration value that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.DatabaseDir) == "" {
		return fmt.Errorf("config: paths.database_dir must not be empty")
	}
	if c.Logging.Level != "" {
		if _, ok := validLevels[c.Logging.Level]; !ok {
			return fmt.Errorf("config: logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
		}
	}
	if c.Logging.Format != "" {
		if _, ok := validFormats[c.Logging.Format]; !ok {
			return fmt.Errorf("config: logging.format %q is not one of console, json", c.Logging.Format)
		}
	}
	if c.Validation.Workers < 0 {
		return fmt.Errorf("config: validation.workers must not be negative")
	}
	for _, ext := range c.Validation.MetadataExtensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("config: validation.metadata_extensions contains an empty entry")
		}
	}
	return nil
}
