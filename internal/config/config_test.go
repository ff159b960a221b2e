package config

import (
	"path/filepath"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	saved := Config{
		OutputDirectory: "/music/out",
		Codec:           "mp3",
		Quality:         "V 2 (190 kbps)",
		Concurrency:     6,
	}
	if err := SaveConfig(path, &saved); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	var loaded Config
	if err := LoadConfig(path, &loaded); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg Config
	if err := LoadConfig(filepath.Join(t.TempDir(), "config.json"), &cfg); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDefaultQuality(t *testing.T) {
	tests := []struct {
		codec string
		want  string
	}{
		{"ogg", DefaultOggQuality},
		{"OGG", DefaultOggQuality},
		{"mp3", DefaultMp3Quality},
		{"flac", ""},
	}
	for _, tt := range tests {
		if got := DefaultQuality(tt.codec); got != tt.want {
			t.Errorf("DefaultQuality(%q) = %q, want %q", tt.codec, got, tt.want)
		}
	}
}
