// Package testsupport provides fixtures shared across package tests: temp
// configs, catalog stores, and file-record collections.
package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DatabaseDir = filepath.Join(base, "db")
	cfg.Paths.LogDir = ""
	cfg.Validation.Workers = 1
	return &cfg
}
