package config

import "path/filepath"

// Default returns the configuration used when no file overrides anything.
func Default() Config {
	return Config{
		Paths: Paths{
			DatabaseDir: filepath.Join(homeDir(), ".local", "share", "shuttersense"),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Validation: Validation{
			Workers:            0,
			MetadataExtensions: []string{".xmp"},
		},
	}
}
