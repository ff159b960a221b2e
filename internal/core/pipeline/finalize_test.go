package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cue-splitter/internal/shared"
)

func makeWorkDir(t *testing.T, parent string) string {
	t.Helper()
	workDir, err := os.MkdirTemp(parent, "tmp")
	if err != nil {
		t.Fatalf("failed to create working directory: %v", err)
	}
	return workDir
}

func TestFinalizeRenamesToPerformerTitle(t *testing.T) {
	parent := t.TempDir()
	workDir := makeWorkDir(t, parent)
	album := &shared.Album{Performer: "Performer", Title: "Title"}

	got, err := Finalize(workDir, album)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	want := filepath.Join(parent, "Performer - Title")
	if got != want {
		t.Errorf("final path = %q, want %q", got, want)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("final directory missing: %v", err)
	}
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Errorf("working directory still present after rename")
	}
}

func TestFinalizeReplacesUnsafeCharacters(t *testing.T) {
	parent := t.TempDir()
	workDir := makeWorkDir(t, parent)
	album := &shared.Album{Performer: "AC/DC", Title: "Who Made Who?!"}

	got, err := Finalize(workDir, album)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if base := filepath.Base(got); base != "AC-DC - Who Made Who_" {
		t.Errorf("final name = %q, want %q", base, "AC-DC - Who Made Who_")
	}
}

func TestFinalizeTruncatesLongNames(t *testing.T) {
	parent := t.TempDir()
	workDir := makeWorkDir(t, parent)
	album := &shared.Album{
		Performer: "An Extraordinarily Verbose Ensemble",
		Title:     "A Title That Runs Far Past Any Sane Length",
	}

	got, err := Finalize(workDir, album)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	base := filepath.Base(got)
	if runes := []rune(base); len(runes) != maxDirNameLength+1 {
		t.Errorf("final name is %d runes, want %d", len(runes), maxDirNameLength+1)
	}
	if !strings.HasSuffix(base, "_") {
		t.Errorf("truncated name %q lacks the trailing underscore marker", base)
	}
}

func TestFinalizeResolvesCollisions(t *testing.T) {
	parent := t.TempDir()
	album := &shared.Album{Performer: "Performer", Title: "Title"}

	// Occupy the base name and the first three numbered variants.
	for _, name := range []string{
		"Performer - Title",
		"Performer - Title_1",
		"Performer - Title_2",
		"Performer - Title_3",
	} {
		if err := os.Mkdir(filepath.Join(parent, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	workDir := makeWorkDir(t, parent)
	got, err := Finalize(workDir, album)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if base := filepath.Base(got); base != "Performer - Title_4" {
		t.Errorf("final name = %q, want %q", base, "Performer - Title_4")
	}
}
