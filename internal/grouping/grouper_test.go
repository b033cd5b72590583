package grouping_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/grouping"
)

func records(names ...string) []files.Info {
	recs := make([]files.Info, 0, len(names))
	for _, name := range names {
		recs = append(recs, files.NewInfo("photos/"+name, 1))
	}
	return recs
}

func TestBuildImageGroupsLegacyFormat(t *testing.T) {
	groups, invalid := grouping.BuildImageGroups(
		records("AB3D0001.dng", "AB3D0001-2.dng", "AB3D0001-HDR.dng"), "", 0)
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid files: %#v", invalid)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	group := groups[0]
	if group.GroupID != "AB3D0001" || group.CameraID != "AB3D" || group.Counter != "0001" {
		t.Fatalf("unexpected group identity: %#v", group)
	}

	base, ok := group.SeparateImages[""]
	if !ok {
		t.Fatal("expected base separate image")
	}
	wantFiles := []string{"photos/AB3D0001-HDR.dng", "photos/AB3D0001.dng"}
	if diff := cmp.Diff(wantFiles, base.Files); diff != "" {
		t.Fatalf("base files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"HDR"}, base.Properties); diff != "" {
		t.Fatalf("base properties mismatch (-want +got):\n%s", diff)
	}

	alt, ok := group.SeparateImages["2"]
	if !ok {
		t.Fatal("expected separate image with suffix 2")
	}
	if diff := cmp.Diff([]string{"photos/AB3D0001-2.dng"}, alt.Files); diff != "" {
		t.Fatalf("alternate files mismatch (-want +got):\n%s", diff)
	}
	if len(alt.Properties) != 0 {
		t.Fatalf("expected no properties on alternate, got %v", alt.Properties)
	}
}

func TestBuildImageGroupsIdempotent(t *testing.T) {
	input := records("AB3D0002-BW.dng", "AB3D0001.dng", "AB3D0001-2-HDR.dng", "XY7Z0042.cr3")
	first, firstInvalid := grouping.BuildImageGroups(input, "", 0)
	second, secondInvalid := grouping.BuildImageGroups(input, "", 0)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("grouping not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstInvalid, secondInvalid); diff != "" {
		t.Fatalf("invalid files not deterministic:\n%s", diff)
	}
}

func TestFirstNumericTokenWinsRegardlessOfPosition(t *testing.T) {
	groups, invalid := grouping.BuildImageGroups(records("AB3D0001-HDR-2.dng"), "", 0)
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid files: %#v", invalid)
	}
	image, ok := groups[0].SeparateImages["2"]
	if !ok {
		t.Fatalf("expected numeric token to become the suffix, got %v", groups[0].SeparateImages)
	}
	if diff := cmp.Diff([]string{"HDR"}, image.Properties); diff != "" {
		t.Fatalf("expected HDR demoted to property (-want +got):\n%s", diff)
	}
}

func TestLaterNumericTokensDemotedToProperties(t *testing.T) {
	groups, _ := grouping.BuildImageGroups(records("AB3D0001-2-3.dng"), "", 0)
	image, ok := groups[0].SeparateImages["2"]
	if !ok {
		t.Fatal("expected first numeric token as suffix")
	}
	if diff := cmp.Diff([]string{"3"}, image.Properties); diff != "" {
		t.Fatalf("expected second numeric token as property (-want +got):\n%s", diff)
	}
}

func TestInvalidFilenamesAreRoutedNotFatal(t *testing.T) {
	groups, invalid := grouping.BuildImageGroups(
		records("AB3D0001.dng", "notaphoto.txt", "AB3D0000.dng", "AB3D0001--HDR.dng"), "", 0)
	if len(groups) != 1 {
		t.Fatalf("expected the valid file to still group, got %d groups", len(groups))
	}
	if len(invalid) != 3 {
		t.Fatalf("expected 3 invalid files, got %#v", invalid)
	}
	for _, inv := range invalid {
		if inv.Reason == "" {
			t.Fatalf("invalid file %s missing reason", inv.Filename)
		}
	}
}

func TestRegexParserWithCameraIDGroupTwo(t *testing.T) {
	// Counter first, camera id second.
	groups, invalid := grouping.BuildImageGroups(
		records("0001_LEICA.dng", "0001_LEICA-BW.dng"),
		`^(\d{4})_([A-Z]+)`, 2)
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid files: %#v", invalid)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	group := groups[0]
	if group.CameraID != "LEICA" || group.Counter != "0001" {
		t.Fatalf("camera id group selection wrong: %#v", group)
	}
	base := group.SeparateImages[""]
	if base == nil || len(base.Files) != 2 {
		t.Fatalf("unexpected base image: %#v", base)
	}
	if diff := cmp.Diff([]string{"BW"}, base.Properties); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestRegexTrailingDashRejected(t *testing.T) {
	_, invalid := grouping.BuildImageGroups(records("AB3D0001-.dng"), `^([A-Z0-9]{4})(\d{4})`, 1)
	if len(invalid) != 1 {
		t.Fatalf("expected trailing dash to invalidate the file, got %#v", invalid)
	}
}

func TestRegexDoubleDashRejected(t *testing.T) {
	_, invalid := grouping.BuildImageGroups(records("AB3D0001--HDR.dng"), `^([A-Z0-9]{4})(\d{4})`, 1)
	if len(invalid) != 1 {
		t.Fatalf("expected double dash to invalidate the file, got %#v", invalid)
	}
}

func TestUnusableRegexFallsBackToLegacy(t *testing.T) {
	groups, invalid := grouping.BuildImageGroups(records("AB3D0001.dng"), `([`, 1)
	if len(invalid) != 0 {
		t.Fatalf("expected legacy fallback to accept the file, got %#v", invalid)
	}
	if len(groups) != 1 || groups[0].GroupID != "AB3D0001" {
		t.Fatalf("unexpected groups: %#v", groups)
	}

	// A regex with a single capture group is equally unusable.
	groups, invalid = grouping.BuildImageGroups(records("AB3D0001.dng"), `^(\w+)`, 1)
	if len(invalid) != 0 || len(groups) != 1 {
		t.Fatalf("expected fallback for single-group regex, got %#v / %#v", groups, invalid)
	}
}

func TestGroupsSortedByGroupID(t *testing.T) {
	groups, _ := grouping.BuildImageGroups(
		records("ZZ990009.dng", "AA110001.dng", "MM550005.dng"), "", 0)
	var ids []string
	for _, g := range groups {
		ids = append(ids, g.GroupID)
	}
	want := []string{"AA110001", "MM550005", "ZZ990009"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("group order mismatch (-want +got):\n%s", diff)
	}
}
