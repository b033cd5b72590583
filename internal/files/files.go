package files

import (
	"path/filepath"
	"sort"
	"strings"
)

// Info describes a single file in a collection. Extension keeps its leading
// dot and the original casing; comparisons are case-insensitive throughout
// the engine.
type Info struct {
	Path      string
	Name      string
	Stem      string
	Extension string
	Size      int64
}

// NewInfo builds an Info from a path and size, deriving name, stem, and
// extension the way the scanner does.
func NewInfo(path string, size int64) Info {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return Info{
		Path:      path,
		Name:      name,
		Stem:      strings.TrimSuffix(name, ext),
		Extension: ext,
		Size:      size,
	}
}

// HasExtension reports whether the file carries the given extension,
// ignoring case. The argument may be supplied with or without the leading
// dot.
func (i Info) HasExtension(ext string) bool {
	return strings.EqualFold(NormalizeExtension(i.Extension), NormalizeExtension(ext))
}

// NormalizeExtension lowercases an extension and ensures a leading dot.
// Empty input stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SortByPath orders records lexically by path. The grouper relies on its
// input ordering being deterministic.
func SortByPath(records []Info) {
	sort.Slice(records, func(a, b int) bool { return records[a].Path < records[b].Path })
}

// Split partitions records into those whose extension appears in exts and
// the remainder, preserving relative order. Matching is case-insensitive.
func Split(records []Info, exts []string) (matched, rest []Info) {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[NormalizeExtension(ext)] = struct{}{}
	}
	for _, rec := range records {
		if _, ok := set[NormalizeExtension(rec.Extension)]; ok {
			matched = append(matched, rec)
			continue
		}
		rest = append(rest, rec)
	}
	return matched, rest
}
