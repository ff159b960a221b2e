package shared

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/unicode/norm"
)

// Characters that portable players and downstream tooling choke on.
// Every occurrence is replaced with an underscore.
const unsafeFilenameChars = " ?¿:°@&%$#|¡><~`\"/´¨\\*"

// SanitizeFilename strips combining diacritical marks and replaces
// path-unsafe characters with underscores. The transform is idempotent.
func SanitizeFilename(name string) string {
	decomposed := norm.NFD.String(name)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if strings.ContainsRune(unsafeFilenameChars, r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CleanupTrackFilenames sanitizes every filename in dir in place and removes
// encoder-emitted pre-gap artifacts, which are not real tracks and would
// break positional tag transfer.
func CleanupTrackFilenames(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		clean := SanitizeFilename(name)
		path := filepath.Join(dir, name)
		if clean != name {
			cleanPath := filepath.Join(dir, clean)
			if err := os.Rename(path, cleanPath); err != nil {
				return err
			}
			path = cleanPath
		}
		if strings.Contains(clean, "pregap.") {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListFilesByExtension returns the lexicographically sorted file paths in
// dir carrying the given extension (without dot).
func ListFilesByExtension(dir, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*."+ext))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DefaultConcurrency derives the split concurrency limit from the available
// CPU parallelism, keeping headroom for the encoder processes themselves.
func DefaultConcurrency() int {
	limit := runtime.NumCPU() - 4
	if limit < 1 {
		limit = 1
	}
	return limit
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
