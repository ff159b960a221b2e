package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cue-splitter/internal/shared"
)

// maxDirNameLength bounds final directory names; longer candidates are
// truncated and marked with a trailing underscore.
const maxDirNameLength = 42

// dirNameReplacer swaps the characters that are unsafe in directory names.
var dirNameReplacer = strings.NewReplacer(
	":", "-",
	"/", "-",
	"\\", "-",
	"!", "",
	"?", "_",
	"*", "_",
)

// Finalize renames the working directory to its final collision-free
// "performer - title" name and returns the new path. On a collision the
// name gets a _1 suffix; if that exists too, the trailing integer is
// incremented until a free name is found. If the target still exists after
// the loop the working directory is left in place for manual recovery.
func Finalize(workDir string, album *shared.Album) (string, error) {
	name := dirNameReplacer.Replace(album.Performer + " - " + album.Title)
	if runes := []rune(name); len(runes) > maxDirNameLength {
		name = string(runes[:maxDirNameLength]) + "_"
	}

	target := filepath.Join(filepath.Dir(workDir), name)
	if pathExists(target) {
		target += "_1"
		for pathExists(target) {
			cut := strings.LastIndex(target, "_")
			seq, err := strconv.Atoi(target[cut+1:])
			if err != nil {
				return "", fmt.Errorf("failed to parse collision suffix of %s: %w", target, err)
			}
			target = target[:cut+1] + strconv.Itoa(seq+1)
		}
	}
	// Defensive final check; not expected to trigger under sequential numbering.
	if pathExists(target) {
		return "", fmt.Errorf("final directory name already exists: %s", target)
	}
	if err := os.Rename(workDir, target); err != nil {
		return "", fmt.Errorf("failed to rename working directory: %w", err)
	}
	return target, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
