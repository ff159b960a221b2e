package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Quality presets offered per codec. OGG uses the libvorbis quality scale;
// MP3 entries carry either a fixed bitrate ("b ...") or a VBR scale
// ("V n ..."); FLAC always uses a fixed compression level.
var (
	OggQualities = []string{"-1", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	Mp3Qualities = []string{
		"b 320 (320 kbps)",
		"V 0 (245 kbps)",
		"V 1 (225 kbps)",
		"V 2 (190 kbps)",
		"V 3 (175 kbps)",
		"V 4 (165 kbps)",
		"V 5 (130 kbps)",
	}
)

const (
	DefaultOggQuality = "6"
	DefaultMp3Quality = "V 1 (225 kbps)"
)

// Configuration structure
type Config struct {
	OutputDirectory string `json:"OutputDirectory"`
	Codec           string `json:"Codec"`
	Quality         string `json:"Quality"`
	Concurrency     int    `json:"Concurrency"`
}

// DefaultQuality returns the default quality preset for a codec name.
// FLAC has no quality selection.
func DefaultQuality(codec string) string {
	switch codec {
	case "mp3", "MP3":
		return DefaultMp3Quality
	case "ogg", "OGG":
		return DefaultOggQuality
	}
	return ""
}

// CreateDirIfNotExists creates a directory if it does not exist
func CreateDirIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
