package splitter

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"cue-splitter/internal/core/cuesheet"
	"cue-splitter/internal/shared"
)

// CheckFFmpeg checks if ffmpeg is installed and available in the system's PATH.
func CheckFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// standardSampleRate is the CD rate lossy outputs are downsampled to when
// the source uses anything else (or the rate is unknown).
const standardSampleRate = 44100

// flacCompressionLevel is fixed; FLAC output always mirrors the source
// sample rate and bit depth, so there is no quality selection.
const flacCompressionLevel = "5"

// Job is one fully formed external cut invocation for a single track.
type Job struct {
	TrackIndex int
	Args       []string // argv of the encoder invocation
	OutputPath string
}

// BuildJobs constructs one cut command per track. Start time is the track's
// normalized INDEX in seconds with 10 decimal places; end time is the next
// track's start. The last track has no explicit duration and cuts to the
// end of the input.
func BuildJobs(album *shared.Album, info shared.AudioImageInfo, codec shared.Codec, quality string, workDir string) ([]Job, error) {
	starts := make([]string, len(album.Tracks))
	for i, track := range album.Tracks {
		start, err := cuesheet.IndexToSeconds(track.Index)
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", track.Number, err)
		}
		starts[i] = start
	}

	encoderArgs, err := codecArgs(codec, quality)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(album.Tracks))
	for i, track := range album.Tracks {
		args := []string{
			"ffmpeg", "-hide_banner", "-loglevel", "error", "-nostdin",
			"-i", info.Path,
		}
		args = append(args, encoderArgs...)
		if codec != shared.CodecFLAC && info.SampleRate != standardSampleRate {
			args = append(args, "-ar", strconv.Itoa(standardSampleRate))
		}
		args = append(args, "-ss", starts[i])
		if i < len(album.Tracks)-1 {
			duration, err := secondsDelta(starts[i], starts[i+1])
			if err != nil {
				return nil, fmt.Errorf("track %s: %w", track.Number, err)
			}
			args = append(args, "-t", duration)
		}

		number, err := strconv.Atoi(strings.TrimSpace(track.Number))
		if err != nil {
			return nil, fmt.Errorf("track %q: malformed track number: %w", track.Number, err)
		}
		name := fmt.Sprintf("%02d_%s.%s", number, shared.SanitizeFilename(track.Title), codec.Extension())
		outputPath := filepath.Join(workDir, name)
		args = append(args, outputPath)

		jobs = append(jobs, Job{TrackIndex: i, Args: args, OutputPath: outputPath})
	}
	return jobs, nil
}

// codecArgs returns the encoder parameters for the selected codec/quality.
// MP3 quality strings are compound labels: "b 320 (320 kbps)" selects a
// constant bitrate, "V n (...)" a VBR scale where n is the digit after "V ".
func codecArgs(codec shared.Codec, quality string) ([]string, error) {
	switch codec {
	case shared.CodecOGG:
		if quality == "" {
			return nil, fmt.Errorf("ogg requires a quality value")
		}
		return []string{"-acodec", "libvorbis", "-ac", "2", "-qscale:a", quality}, nil
	case shared.CodecMP3:
		if len(quality) < 3 {
			return nil, fmt.Errorf("malformed mp3 quality %q", quality)
		}
		args := []string{"-acodec", "mp3", "-ac", "2"}
		if quality[0] == 'b' {
			return append(args, "-b:a", "320k"), nil
		}
		return append(args, "-qscale:a", string(quality[2])), nil
	case shared.CodecFLAC:
		return []string{"-acodec", "flac", "-ac", "2", "-compression_level", flacCompressionLevel}, nil
	}
	return nil, fmt.Errorf("unsupported codec %q", codec)
}

// secondsDelta computes stop-start keeping the 10-decimal rendering used
// for cut points.
func secondsDelta(start, stop string) (string, error) {
	startF, err := strconv.ParseFloat(start, 64)
	if err != nil {
		return "", err
	}
	stopF, err := strconv.ParseFloat(stop, 64)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.10f", stopF-startF), nil
}
