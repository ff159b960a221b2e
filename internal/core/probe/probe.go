package probe

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-flac/go-flac"

	"cue-splitter/internal/shared"
)

// Inspect determines the container format, sample rate and bit depth of an
// audio image. Detection strategies are tried in order and the first one to
// succeed wins; when all fail the returned info keeps its zero values and
// the caller treats the sample rate as "assume resampling needed". Inspect
// itself never fails.
func Inspect(path string) shared.AudioImageInfo {
	info := shared.AudioImageInfo{Path: path}

	strategies := []func(string, *shared.AudioImageInfo) error{
		probeWithFFprobe, // broadest coverage, handles AIFF and friends
		probeFLAC,        // precise for FLAC, including bit depth
		probeWAVHeader,   // raw RIFF chunk fields
	}
	for _, strategy := range strategies {
		if err := strategy(path, &info); err == nil && info.Format != "" {
			return info
		}
	}
	return info
}

// ffprobeOutput models the subset of `ffprobe -print_format json` we read.
type ffprobeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType        string `json:"codec_type"`
		SampleRate       string `json:"sample_rate"`
		BitsPerSample    int    `json:"bits_per_sample"`
		BitsPerRawSample string `json:"bits_per_raw_sample"`
	} `json:"streams"`
}

func probeWithFFprobe(path string, info *shared.AudioImageInfo) error {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path)
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("ffprobe failed: %w", err)
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if probed.Format.FormatName == "" {
		return errors.New("ffprobe reported no container format")
	}

	info.Format = strings.ToUpper(probed.Format.FormatName)
	for _, stream := range probed.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		if rate, err := strconv.Atoi(stream.SampleRate); err == nil {
			info.SampleRate = rate
		}
		if bits, err := strconv.Atoi(stream.BitsPerRawSample); err == nil && bits > 0 {
			info.BitsPerSample = bits
		} else if stream.BitsPerSample > 0 {
			info.BitsPerSample = stream.BitsPerSample
		}
		break
	}
	return nil
}

func probeFLAC(path string, info *shared.AudioImageInfo) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC: %w", err)
	}
	for _, block := range f.Meta {
		if block.Type != flac.StreamInfo {
			continue
		}
		data := block.Data
		if len(data) < 18 {
			return errors.New("short STREAMINFO block")
		}
		// Sample rate: 20 bits starting at byte 10; bit depth: 5 bits
		// straddling bytes 12-13, stored as depth-1.
		info.SampleRate = int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		info.BitsPerSample = int(data[12]&0x01)<<4 | int(data[13])>>4
		info.BitsPerSample++
		info.Format = "FLAC"
		return nil
	}
	return errors.New("no STREAMINFO block found")
}

func probeWAVHeader(path string, info *shared.AudioImageInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if !bytes.Equal(header[0:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return errors.New("not a RIFF/WAVE file")
	}

	// Walk chunks looking for "fmt ".
	chunkHeader := make([]byte, 8)
	for {
		if _, err := f.Read(chunkHeader); err != nil {
			return fmt.Errorf("fmt chunk not found: %w", err)
		}
		size := binary.LittleEndian.Uint32(chunkHeader[4:8])
		if bytes.Equal(chunkHeader[0:4], []byte("fmt ")) {
			if size < 16 {
				return errors.New("short fmt chunk")
			}
			fmtChunk := make([]byte, 16)
			if _, err := f.Read(fmtChunk); err != nil {
				return fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
			info.Format = "WAVE"
			return nil
		}
		// Chunks are word-aligned.
		if size%2 == 1 {
			size++
		}
		if _, err := f.Seek(int64(size), 1); err != nil {
			return fmt.Errorf("failed to skip chunk: %w", err)
		}
	}
}
