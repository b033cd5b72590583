package grouping

import (
	"sort"
	"strings"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
)

// Flatten expands image groups into specific images, one per separate
// capture, sorted by base filename. Properties and files are copied so the
// result is independent of the groups it came from.
func Flatten(groups []ImageGroup) []SpecificImage {
	var images []SpecificImage
	for _, group := range groups {
		for suffix, data := range group.SeparateImages {
			base := group.GroupID
			if suffix != "" {
				base = group.GroupID + "-" + suffix
			}
			images = append(images, SpecificImage{
				BaseFilename: base,
				CameraID:     group.CameraID,
				Counter:      group.Counter,
				Suffix:       suffix,
				Properties:   sortedCopy(data.Properties),
				Files:        sortedCopy(data.Files),
			})
		}
	}
	sort.Slice(images, func(a, b int) bool { return images[a].BaseFilename < images[b].BaseFilename })
	return images
}

// AttachMetadata appends sidecar files to the specific image whose base
// filename equals the sidecar's stem, ignoring case. Sidecars that match no
// image are returned so the caller can report them.
func AttachMetadata(images []SpecificImage, sidecars []files.Info) []files.Info {
	index := make(map[string]int, len(images))
	for i, img := range images {
		index[strings.ToLower(img.BaseFilename)] = i
	}

	var unmatched []files.Info
	touched := make(map[int]struct{})
	for _, sidecar := range sidecars {
		i, ok := index[strings.ToLower(sidecar.Stem)]
		if !ok {
			unmatched = append(unmatched, sidecar)
			continue
		}
		images[i].Files = append(images[i].Files, sidecar.Path)
		touched[i] = struct{}{}
	}
	for i := range touched {
		sort.Strings(images[i].Files)
	}
	return unmatched
}
