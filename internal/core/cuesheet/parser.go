package cuesheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cue-splitter/internal/shared"
)

// Parse failure modes. All of them abort only the current cuesheet; the
// batch caller continues with the next one.
var (
	ErrNoFileStatement   = errors.New("cuesheet has no FILE statement")
	ErrMultipleFiles     = errors.New("cuesheet has more than one FILE statement")
	ErrAudioImageMissing = errors.New("referenced audio image does not exist")
	ErrNoTracks          = errors.New("cuesheet contains no complete tracks")
	ErrIncompleteTrack   = errors.New("cuesheet ends with an incomplete track")
)

// Parse turns raw cuesheet text into an Album. baseDir resolves the FILE
// reference when it is relative; the referenced audio image must exist.
//
// The scan runs in two passes: a header pass that stops at the first TRACK
// line, then a track pass over the full text. There is no partial success;
// any failure returns a nil Album.
func Parse(text string, baseDir string) (*shared.Album, error) {
	lines := strings.Split(text, "\n")

	album := &shared.Album{}
	var (
		gotPerformer bool
		gotTitle     bool
		gotFile      bool
	)

	// Header pass: album-level fields, terminated by the track section.
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "REM GENRE"):
			album.Genre = stripQuotes(strings.TrimSpace(line[len("REM GENRE"):]))
		case strings.HasPrefix(line, "REM DATE"):
			year := stripQuotes(strings.TrimSpace(line[len("REM DATE"):]))
			if isAllDigits(year) {
				album.Year = year
			}
		case strings.HasPrefix(line, "PERFORMER") && !gotPerformer:
			album.Performer = stripQuotes(strings.TrimSpace(line[len("PERFORMER"):]))
			gotPerformer = true
		case strings.HasPrefix(line, "TITLE") && !gotTitle:
			title := stripQuotes(strings.TrimSpace(line[len("TITLE"):]))
			// The HDAudio marker only describes the source image.
			title = strings.TrimSpace(strings.ReplaceAll(title, "[HDAudio]", ""))
			album.Title = title
			gotTitle = true
		case strings.HasPrefix(line, "FILE"):
			if gotFile {
				return nil, ErrMultipleFiles
			}
			gotFile = true
			name := extractFilename(strings.TrimSpace(line[len("FILE"):]))
			if !filepath.IsAbs(name) {
				name = filepath.Join(baseDir, name)
			}
			if !shared.FileExists(name) {
				return nil, fmt.Errorf("%w: %s", ErrAudioImageMissing, name)
			}
			album.AudioImagePath = name
		}
		if strings.HasPrefix(line, "TRACK") {
			break
		}
	}

	if !gotFile {
		return nil, ErrNoFileStatement
	}

	// Track pass: capture number, title, performer and split index; a track
	// commits as soon as all four are present. Only the last INDEX seen
	// before the commit is kept - that is the split point used downstream.
	var current shared.Track
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "TRACK"):
			if len(line) >= 8 {
				current.Number = strings.TrimSpace(line[6:8])
			}
		case strings.HasPrefix(line, "PERFORMER") && current.Number != "":
			current.Performer = stripQuotes(strings.TrimSpace(line[len("PERFORMER"):]))
		case strings.HasPrefix(line, "TITLE") && current.Number != "":
			current.Title = stripQuotes(strings.TrimSpace(line[len("TITLE"):]))
		case strings.HasPrefix(line, "INDEX") && current.Number != "":
			if len(line) > 8 {
				current.Index = stripQuotes(strings.TrimSpace(line[8:]))
			}
		}
		if current.Number != "" && current.Title != "" && current.Performer != "" && current.Index != "" {
			album.Tracks = append(album.Tracks, current)
			current = shared.Track{}
		}
	}

	if current.Number != "" {
		return nil, ErrIncompleteTrack
	}
	if len(album.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	return album, nil
}

// stripQuotes removes a surrounding quote pair. The rule is deliberately
// lenient: if the first character is a quote, the first and last characters
// are dropped, accepting both single and double quoting.
func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// extractFilename pulls the filename out of the remainder of a FILE line,
// e.g. `"CDImage.flac" WAVE`. The trailing type token is discarded.
func extractFilename(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		quote := s[0]
		rest := s[1:]
		if end := strings.IndexByte(rest, quote); end >= 0 {
			return rest[:end]
		}
		s = rest
	}
	// Unquoted: drop the trailing audio type (e.g. " WAVE").
	if i := strings.LastIndex(s, " "); i > 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
