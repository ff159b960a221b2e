package cuesheet

import (
	"bytes"
	"testing"
)

func TestDecodeToUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "plain ascii passthrough",
			in:   []byte("TITLE \"Album\""),
			want: []byte("TITLE \"Album\""),
		},
		{
			name: "bom stripped",
			in:   append([]byte{0xEF, 0xBB, 0xBF}, []byte("TITLE \"Album\"")...),
			want: []byte("TITLE \"Album\""),
		},
		{
			name: "valid utf-8 kept as is",
			in:   []byte("TITLE \"Café\""),
			want: []byte("TITLE \"Café\""),
		},
		{
			// 0xE9 is é in ISO 8859-1 and invalid as a standalone UTF-8 byte.
			name: "latin-1 re-encoded",
			in:   []byte{'C', 'a', 'f', 0xE9},
			want: []byte("Café"),
		},
		{
			// The coding hint wins even when a stray byte makes the buffer
			// invalid UTF-8; the bytes pass through untouched.
			name: "coding hint suppresses re-encoding",
			in:   append([]byte("REM -*- coding: utf-8 -*-\n"), 0xE9),
			want: append([]byte("REM -*- coding: utf-8 -*-\n"), 0xE9),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeToUTF8(tt.in)
			if err != nil {
				t.Fatalf("DecodeToUTF8 failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeToUTF8(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
