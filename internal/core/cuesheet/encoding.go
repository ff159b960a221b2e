package cuesheet

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// utf8Hint is written by some rippers into cuesheets they re-encode; its
// presence means the bytes are UTF-8 regardless of what detection says.
const utf8Hint = "-*- coding: utf-8 -*-"

// DecodeToUTF8 normalizes raw cuesheet bytes to plain UTF-8. EAC and other
// Windows rippers commonly emit ISO 8859-1 (or UTF-8 with a BOM); anything
// that is not already valid UTF-8 is decoded as Latin-1.
func DecodeToUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if bytes.Contains(data, []byte(utf8Hint)) || utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode cuesheet to UTF-8: %w", err)
	}
	return decoded, nil
}
