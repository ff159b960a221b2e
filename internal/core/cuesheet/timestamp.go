package cuesheet

import (
	"fmt"
	"strconv"
	"strings"
)

// framesPerSecond is the Red Book audio frame rate: INDEX time codes count
// 75 frames per second.
const framesPerSecond = 75

// NormalizeTimestamps rewrites every INDEX time code from the frame-based
// MM:SS:FF form to a sub-second decimal MM:SS.nnnnnnnnnn form, which the
// encoder needs to locate the exact PCM sample to cut at. A 3-digit tail is
// taken as milliseconds and joined with a dot; a tail that already contains
// a dot is left untouched, so the transform is idempotent. Precision here is
// a correctness requirement: the cut points must stay sample-accurate.
func NormalizeTimestamps(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "INDEX") {
			continue
		}
		colon := strings.LastIndex(line, ":")
		if colon < 0 {
			continue
		}
		prefix := line[:colon]
		tail := line[colon+1:]
		body := strings.TrimRight(tail, "\r")
		ending := tail[len(body):]
		if strings.Contains(body, ".") {
			continue
		}
		switch len(body) {
		case 2:
			frames, err := strconv.Atoi(body)
			if err != nil {
				continue
			}
			frac := float64(frames) * (1.0 / framesPerSecond) * 1e10
			lines[i] = prefix + "." + fmt.Sprintf("%010.0f", frac) + ending
		case 3:
			// Already milliseconds, just switch the separator.
			lines[i] = prefix + "." + body + ending
		}
	}
	return strings.Join(lines, "\n")
}

// IndexToSeconds converts a normalized INDEX value (MM:SS.nnnnnnnnnn) to a
// seconds string with 10 decimal places, the format handed to the encoder
// as the seek position. A still frame-based value is normalized first.
func IndexToSeconds(index string) (string, error) {
	if strings.Count(index, ":") > 1 && !strings.Contains(index, ".") {
		index = NormalizeTimestamps("INDEX 01 " + index)
		index = strings.TrimSpace(strings.TrimPrefix(index, "INDEX 01"))
	}
	minutesStr, secondsStr, found := strings.Cut(index, ":")
	if !found {
		return "", fmt.Errorf("malformed index time code %q", index)
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil {
		return "", fmt.Errorf("malformed minutes in time code %q: %w", index, err)
	}
	seconds, err := strconv.ParseFloat(secondsStr, 64)
	if err != nil {
		return "", fmt.Errorf("malformed seconds in time code %q: %w", index, err)
	}
	return fmt.Sprintf("%.10f", float64(minutes*60)+seconds), nil
}
