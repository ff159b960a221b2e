package shared

import "fmt"

// Codec identifies the output encoding for split tracks.
type Codec string

const (
	CodecOGG  Codec = "OGG"
	CodecMP3  Codec = "MP3"
	CodecFLAC Codec = "FLAC"
)

// ParseCodec validates a user-supplied codec name.
func ParseCodec(name string) (Codec, error) {
	switch Codec(name) {
	case CodecOGG, CodecMP3, CodecFLAC:
		return Codec(name), nil
	}
	switch name {
	case "ogg":
		return CodecOGG, nil
	case "mp3":
		return CodecMP3, nil
	case "flac":
		return CodecFLAC, nil
	}
	return "", fmt.Errorf("unknown codec %q (expected ogg, mp3 or flac)", name)
}

// Extension returns the output file extension for the codec, without the dot.
func (c Codec) Extension() string {
	switch c {
	case CodecOGG:
		return "ogg"
	case CodecMP3:
		return "mp3"
	case CodecFLAC:
		return "flac"
	}
	return ""
}

// Track is one track entry parsed out of a cuesheet. Tracks keep their
// source order and their source numbering; they are never renumbered.
type Track struct {
	Number    string // 2-digit number as it appears in the TRACK line
	Title     string
	Performer string
	Index     string // split point time code, MM:SS:FF or MM:SS.nnn
}

// Album is the structured description of one cuesheet: album-level fields
// plus the ordered track list and the single referenced audio image.
type Album struct {
	Title          string
	Performer      string
	Genre          string
	Year           string // numeric string or empty
	AudioImagePath string // absolute path of the single FILE reference
	Tracks         []Track
}

// AudioImageInfo describes the probed characteristics of an audio image.
// Zero values mean the probe could not determine the field; downstream
// logic treats an unknown sample rate as "assume resampling needed".
type AudioImageInfo struct {
	Path          string
	Format        string // FLAC, WAVE, AIFF, ...
	SampleRate    int
	BitsPerSample int
}

// BatchResult accumulates per-cuesheet outcomes across one batch run.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Summary renders the end-of-batch status line.
func (r BatchResult) Summary() string {
	msg := "Cue-splitter job done ("
	if r.Succeeded > 0 {
		msg += fmt.Sprintf("%d split/s OK, ", r.Succeeded)
	}
	if r.Failed > 0 {
		msg += fmt.Sprintf("%d split/s with errors", r.Failed)
	} else {
		msg += "no errors"
	}
	return msg + ")"
}
