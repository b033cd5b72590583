package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
)

func TestNewInfoDerivesParts(t *testing.T) {
	info := files.NewInfo("/photos/AB3D0001-HDR.DNG", 42)
	if info.Name != "AB3D0001-HDR.DNG" {
		t.Fatalf("unexpected name: %q", info.Name)
	}
	if info.Stem != "AB3D0001-HDR" {
		t.Fatalf("unexpected stem: %q", info.Stem)
	}
	if info.Extension != ".DNG" {
		t.Fatalf("unexpected extension: %q", info.Extension)
	}
	if !info.HasExtension("dng") {
		t.Fatal("expected case-insensitive extension match")
	}
}

func TestNormalizeExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{".DNG", ".dng"},
		{"xmp", ".xmp"},
		{"  .Jpg ", ".jpg"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := files.NormalizeExtension(tc.in); got != tc.want {
			t.Fatalf("NormalizeExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitPartitionsByExtension(t *testing.T) {
	records := []files.Info{
		files.NewInfo("a/AB3D0001.dng", 1),
		files.NewInfo("a/AB3D0001.XMP", 1),
		files.NewInfo("a/AB3D0002.dng", 1),
	}
	sidecars, rest := files.Split(records, []string{".xmp"})
	if len(sidecars) != 1 || sidecars[0].Name != "AB3D0001.XMP" {
		t.Fatalf("unexpected sidecars: %#v", sidecars)
	}
	if len(rest) != 2 {
		t.Fatalf("expected 2 remaining records, got %d", len(rest))
	}
}

func TestScanOrdersAndSkipsHidden(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "b", "AB3D0002.dng"))
	mustWrite(t, filepath.Join(root, "a", "AB3D0001.dng"))
	mustWrite(t, filepath.Join(root, ".cache", "thumb.jpg"))
	mustWrite(t, filepath.Join(root, ".DS_Store"))

	records, err := files.Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	var names []string
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	want := []string{"AB3D0001.dng", "AB3D0002.dng"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected scan result (-want +got):\n%s", diff)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
