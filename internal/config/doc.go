// Package config loads and validates the TOML configuration for the
// shuttersense CLI.
//
// Defaults follow XDG-style locations under the user's home directory and
// every field can be overridden from ~/.config/shuttersense/config.toml or an
// explicit --config path. Use Default for in-process construction (tests,
// embedding) and Load for file-backed resolution.
package config
