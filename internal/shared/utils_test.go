package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"First Song", "First_Song"},
		{"Café Olé?", "Cafe_Ole_"},
		{"What's Up: Part 2", "What's_Up__Part_2"},
		{"100% Pure & Raw", "100__Pure___Raw"},
		{`back\slash/forward`, "back_slash_forward"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilenameIdempotent(t *testing.T) {
	in := "Göttërdämmerung ¡Olé! (remix) *"
	once := SanitizeFilename(in)
	twice := SanitizeFilename(once)
	if once != twice {
		t.Errorf("sanitization is not idempotent: %q vs %q", once, twice)
	}
	for _, r := range unsafeFilenameChars {
		if strings.ContainsRune(once, r) {
			t.Errorf("sanitized name %q still contains %q", once, r)
		}
	}
}

func TestCleanupTrackFilenames(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"01_First Söng.ogg",
		"02_Second_Song.ogg",
		"02_Second_Song pregap.ogg",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	if err := CleanupTrackFilenames(dir); err != nil {
		t.Fatalf("CleanupTrackFilenames failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, entry := range entries {
		got = append(got, entry.Name())
	}
	want := []string{"01_First_Song.ogg", "02_Second_Song.ogg"}
	if len(got) != len(want) {
		t.Fatalf("directory contains %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"03_c.ogg", "01_a.ogg", "02_b.ogg", "cover.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := ListFilesByExtension(dir, "ogg")
	if err != nil {
		t.Fatalf("ListFilesByExtension failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	for i, want := range []string{"01_a.ogg", "02_b.ogg", "03_c.ogg"} {
		if filepath.Base(paths[i]) != want {
			t.Errorf("paths[%d] = %q, want %q", i, filepath.Base(paths[i]), want)
		}
	}
}

func TestDefaultConcurrencyFloor(t *testing.T) {
	if got := DefaultConcurrency(); got < 1 {
		t.Errorf("DefaultConcurrency() = %d, want at least 1", got)
	}
}
