package tagger

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"cue-splitter/internal/shared"
)

// ErrTrackCountMismatch means the number of produced files does not match
// the parsed track list, so positional matching would mis-tag files.
var ErrTrackCountMismatch = errors.New("produced file count does not match track count")

// Transfer writes the cuesheet metadata onto the produced track files.
// Files are listed by the codec's extension and sorted lexicographically;
// the i-th file is tagged from the i-th parsed track. That positional match
// is only sound because filenames carry a zero-padded track number prefix -
// an invariant the scheduler guarantees. Per-file failures are collected
// and reported as one aggregate error; remaining files are still tagged.
func Transfer(dir string, codec shared.Codec, album *shared.Album, wc *shared.WarningCollector) error {
	files, err := shared.ListFilesByExtension(dir, codec.Extension())
	if err != nil {
		return fmt.Errorf("failed to list track files: %w", err)
	}
	if len(files) != len(album.Tracks) {
		return fmt.Errorf("%w: %d files, %d tracks", ErrTrackCountMismatch, len(files), len(album.Tracks))
	}

	failures := 0
	for i, file := range files {
		track := album.Tracks[i]
		var tagErr error
		switch codec {
		case shared.CodecFLAC:
			tagErr = tagFLAC(file, track, album, i+1)
		case shared.CodecMP3:
			tagErr = tagMP3(file, track, album, i+1)
		case shared.CodecOGG:
			tagErr = tagOGG(file, track, album, i+1)
		}
		if tagErr != nil {
			failures++
			wc.AddTagWriteWarning(file, tagErr.Error())
		}
	}
	if failures > 0 {
		return fmt.Errorf("tag transfer ended with %d failed file/s", failures)
	}
	return nil
}

// tagFLAC rewrites the vorbis comment block of a FLAC track.
func tagFLAC(path string, track shared.Track, album *shared.Album, number int) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	// Drop any comment block the encoder may have written.
	var kept []*flac.MetaDataBlock
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	comment := flacvorbis.New()
	addField(comment, flacvorbis.FIELD_TITLE, track.Title)
	addField(comment, flacvorbis.FIELD_ARTIST, track.Performer)
	addField(comment, "PERFORMER", album.Performer)
	addField(comment, flacvorbis.FIELD_ALBUM, album.Title)
	addField(comment, "GENRE", album.Genre)
	addField(comment, flacvorbis.FIELD_DATE, album.Year)
	addField(comment, flacvorbis.FIELD_TRACKNUMBER, strconv.Itoa(number))

	vorbisCommentBlock := comment.Marshal()
	f.Meta = append(f.Meta, &vorbisCommentBlock)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file with metadata: %w", err)
	}
	return nil
}

// addField adds a field to a vorbis comment only if value is not empty
func addField(comment *flacvorbis.MetaDataBlockVorbisComment, field, value string) {
	if value != "" {
		comment.Add(field, value)
	}
}

// tagMP3 writes ID3v2 frames. The album-level performer lands in the
// composer frame (TCOM), mirroring how ID3 taggers conventionally keep it
// apart from the per-track artist.
func tagMP3(path string, track shared.Track, album *shared.Album, number int) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open ID3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetTitle(track.Title)
	tag.SetArtist(track.Performer)
	tag.SetAlbum(album.Title)
	if album.Genre != "" {
		tag.SetGenre(album.Genre)
	}
	if album.Performer != "" {
		tag.AddTextFrame("TCOM", id3v2.EncodingUTF8, album.Performer)
	}
	if album.Year != "" {
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, album.Year)
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, album.Year)
	}
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(number))

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save ID3 tag: %w", err)
	}
	return nil
}

// tagOGG retags an ogg vorbis file through a lossless stream-copy remux,
// since the stream itself is not touched the operation is cheap.
func tagOGG(path string, track shared.Track, album *shared.Album, number int) error {
	tagged := path + ".tagged.ogg"
	args := []string{
		"-hide_banner", "-loglevel", "error", "-nostdin",
		"-i", path, "-c", "copy",
		"-metadata", "title=" + track.Title,
		"-metadata", "artist=" + track.Performer,
		"-metadata", "performer=" + album.Performer,
		"-metadata", "album=" + album.Title,
		"-metadata", "genre=" + album.Genre,
		"-metadata", "date=" + album.Year,
		"-metadata", "tracknumber=" + strconv.Itoa(number),
		tagged,
	}
	output, err := exec.Command("ffmpeg", args...).CombinedOutput()
	if err != nil {
		os.Remove(tagged)
		return fmt.Errorf("failed to remux ogg tags: %w\nffmpeg output: %s", err, string(output))
	}
	if err := os.Rename(tagged, path); err != nil {
		return fmt.Errorf("failed to replace ogg file: %w", err)
	}
	return nil
}
