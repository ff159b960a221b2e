package replaygain

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"cue-splitter/internal/shared"
)

// trackExtensions are the output formats rsgain is expected to analyze.
var trackExtensions = []string{"ogg", "mp3", "flac"}

// CheckRsgain checks if rsgain is installed and available in the system's PATH.
func CheckRsgain() bool {
	_, err := exec.LookPath("rsgain")
	return err == nil
}

// HasTrackFiles reports whether dir contains at least one produced track
// file; loudness analysis is skipped for empty directories.
func HasTrackFiles(dir string) bool {
	for _, ext := range trackExtensions {
		files, err := shared.ListFilesByExtension(dir, ext)
		if err == nil && len(files) > 0 {
			return true
		}
	}
	return false
}

// Run performs loudness analysis and replaygain tagging over one album
// directory, computing both album and track gain and embedding the tags.
// The concurrency limit is the same bound used for the split step.
func Run(ctx context.Context, dir string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	cmd := exec.CommandContext(ctx, "rsgain", "easy",
		"--multithread="+strconv.Itoa(concurrency), dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rsgain failed: %w\nrsgain output: %s", err, string(output))
	}
	return nil
}
