package tagger

import (
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacpicture"
	flac "github.com/go-flac/go-flac"

	"cue-splitter/internal/shared"
)

// EmbedCover attaches the resized front-cover image to every produced track
// file. FLAC gets a PICTURE block, MP3 an APIC frame; ogg keeps only the
// directory-level cover.jpg. Failures are warnings, never fatal.
func EmbedCover(dir string, codec shared.Codec, cover []byte, wc *shared.WarningCollector) {
	if len(cover) == 0 || codec == shared.CodecOGG {
		return
	}
	files, err := shared.ListFilesByExtension(dir, codec.Extension())
	if err != nil {
		wc.AddCoverArtWarning(dir, err.Error())
		return
	}
	for _, file := range files {
		var embedErr error
		switch codec {
		case shared.CodecFLAC:
			embedErr = embedFLACCover(file, cover)
		case shared.CodecMP3:
			embedErr = embedMP3Cover(file, cover)
		}
		if embedErr != nil {
			wc.AddCoverArtWarning(file, embedErr.Error())
		}
	}
}

func embedFLACCover(path string, cover []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	var kept []*flac.MetaDataBlock
	for _, block := range f.Meta {
		if block.Type != flac.Picture {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	picture, err := flacpicture.NewFromImageData(
		flacpicture.PictureTypeFrontCover,
		"Front Cover",
		cover,
		"image/jpeg",
	)
	if err != nil {
		return fmt.Errorf("failed to create picture metadata: %w", err)
	}
	pictureBlock := picture.Marshal()
	f.Meta = append(f.Meta, &pictureBlock)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file with cover: %w", err)
	}
	return nil
}

func embedMP3Cover(path string, cover []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open ID3 tag: %w", err)
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     cover,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save ID3 tag with cover: %w", err)
	}
	return nil
}
