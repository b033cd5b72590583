package testsupport

import (
	"testing"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/config"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/inventory"
)

// MustOpenStore opens a catalog store against the test config and closes it
// when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *inventory.Store {
	t.Helper()

	store, err := inventory.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}
