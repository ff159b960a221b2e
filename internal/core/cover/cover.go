package cover

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"cue-splitter/internal/shared"
)

// maxCoverSide caps the longest side of the output cover. Portable players
// reject oversized embedded art, so the bound applies no matter how large
// the source was.
const maxCoverSide = 500

// outputName is the canonical cover filename in the split directory.
const outputName = "cover.jpg"

// sourceNames are the conventional front-cover filenames, in lookup order.
var sourceNames = []string{"cover.front.jpg", "cover.jpg"}

// Transfer looks for a front-cover image next to the cuesheet, resizes it
// to at most 500px on the longest side and writes it as cover.jpg into the
// output directory. Absence is not an error; found reports whether a cover
// was written, and the resized JPEG bytes are returned for tag embedding.
func Transfer(sourceDir, destDir string) (found bool, data []byte, err error) {
	var sourcePath string
	for _, name := range sourceNames {
		candidate := filepath.Join(sourceDir, name)
		if shared.FileExists(candidate) {
			sourcePath = candidate
			break
		}
	}
	if sourcePath == "" {
		return false, nil, nil
	}

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return false, nil, fmt.Errorf("failed to read cover %s: %w", sourcePath, err)
	}
	resized, err := resize(raw, maxCoverSide)
	if err != nil {
		return false, nil, fmt.Errorf("failed to resize cover %s: %w", sourcePath, err)
	}
	if err := os.WriteFile(filepath.Join(destDir, outputName), resized, 0644); err != nil {
		return false, nil, fmt.Errorf("failed to write cover: %w", err)
	}
	return true, resized, nil
}

// resize scales an image down so its longest side is at most maxSide,
// preserving aspect ratio, and re-encodes it as JPEG. Images already within
// the bound are only re-encoded.
func resize(data []byte, maxSide int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxSide || height > maxSide {
		if width >= height {
			height = height * maxSide / width
			width = maxSide
		} else {
			width = width * maxSide / height
			height = maxSide
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Catmull-Rom gives the best quality for downscaling cover art.
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
