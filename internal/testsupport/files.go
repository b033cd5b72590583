package testsupport

import (
	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
)

// Collection builds in-memory file records under a photos/ prefix.
func Collection(names ...string) []files.Info {
	records := make([]files.Info, 0, len(names))
	for _, name := range names {
		records = append(records, files.NewInfo("photos/"+name, 1))
	}
	return records
}
