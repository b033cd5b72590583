package files

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Scan walks root and returns a record for every regular file, ordered
// lexically by path. Hidden files and directories (dot-prefixed) are
// skipped, matching what photo collections on disk usually contain.
func Scan(root string) ([]Info, error) {
	var records []Info
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		records = append(records, NewInfo(path, info.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	SortByPath(records)
	return records, nil
}
