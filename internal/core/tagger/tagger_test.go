package tagger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cue-splitter/internal/shared"
)

func twoTrackAlbum() *shared.Album {
	return &shared.Album{
		Title:     "Title",
		Performer: "Performer",
		Tracks: []shared.Track{
			{Number: "01", Title: "First Song", Performer: "Artist"},
			{Number: "02", Title: "Second Song", Performer: "Artist"},
		},
	}
}

func TestTransferRejectsCountMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "01_First_Song.ogg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	wc := shared.NewWarningCollector(true)
	err := Transfer(dir, shared.CodecOGG, twoTrackAlbum(), wc)
	if !errors.Is(err, ErrTrackCountMismatch) {
		t.Fatalf("Transfer error = %v, want %v", err, ErrTrackCountMismatch)
	}
}

func TestTransferCollectsPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	// Not valid FLAC streams, so every tag write must fail without aborting
	// the loop.
	for _, name := range []string{"01_First_Song.flac", "02_Second_Song.flac"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not flac"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	wc := shared.NewWarningCollector(true)
	err := Transfer(dir, shared.CodecFLAC, twoTrackAlbum(), wc)
	if err == nil {
		t.Fatal("expected aggregate error for unparseable files")
	}
	if got := wc.GetWarningCount(); got != 2 {
		t.Errorf("collected %d warnings, want one per failed file (2)", got)
	}
}

func TestEmbedCoverSkipsOGG(t *testing.T) {
	wc := shared.NewWarningCollector(true)
	// OGG embedding is not supported; the call must be a silent no-op.
	EmbedCover(t.TempDir(), shared.CodecOGG, []byte{0xFF, 0xD8}, wc)
	if wc.HasWarnings() {
		t.Errorf("unexpected warnings: %d", wc.GetWarningCount())
	}
}
