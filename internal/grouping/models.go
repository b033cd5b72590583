package grouping

import (
	"sort"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
)

// SeparateImageData collects the files and processing-method properties of
// one capture within a group. Files and Properties are kept lexically sorted
// so grouping output is deterministic.
type SeparateImageData struct {
	Files      []string
	Properties []string
}

// ImageGroup identifies every file sharing a camera id and counter.
// SeparateImages is keyed by suffix: "" for the base capture, a numeric
// string for alternates.
type ImageGroup struct {
	GroupID        string
	CameraID       string
	Counter        string
	SeparateImages map[string]*SeparateImageData
}

// SpecificImage is the flattened, independently validatable unit: one
// capture, its processing-method properties, and every file that belongs to
// it (image files plus attached sidecars).
type SpecificImage struct {
	BaseFilename string
	CameraID     string
	Counter      string
	Suffix       string
	Properties   []string
	Files        []string
}

// HasProperty reports whether the image carries the given processing-method
// code.
func (s *SpecificImage) HasProperty(code string) bool {
	for _, p := range s.Properties {
		if p == code {
			return true
		}
	}
	return false
}

// HasFileWithExtension reports whether any of the image's files carries the
// extension, ignoring case.
func (s *SpecificImage) HasFileWithExtension(ext string) bool {
	want := files.NormalizeExtension(ext)
	for _, path := range s.Files {
		if files.NormalizeExtension(extensionOf(path)) == want {
			return true
		}
	}
	return false
}

// InvalidFile records a filename the grouper could not place, with a
// human-readable reason.
type InvalidFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Reason   string `json:"reason"`
}

func extensionOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}

func sortedCopy(values []string) []string {
	cp := make([]string, len(values))
	copy(cp, values)
	sort.Strings(cp)
	return cp
}
