package shared

import (
	"fmt"
	"sort"
	"strings"
)

// WarningType represents different types of warnings
type WarningType int

const (
	ProbeWarning WarningType = iota
	TagWriteWarning
	CoverArtWarning
	ReplayGainWarning
	PregapRemovedWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // cuesheet/track context
	Details string // additional details like an error message
}

// WarningCollector collects non-fatal warnings while a cuesheet is processed.
// Warnings never abort the pipeline; they are summarized at the end.
type WarningCollector struct {
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}
	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddProbeWarning records that the audio image characteristics could not be
// fully determined and downstream defaults apply.
func (wc *WarningCollector) AddProbeWarning(imagePath, details string) {
	wc.AddWarning(ProbeWarning, imagePath, "Audio image characteristics undetermined", details)
}

// AddTagWriteWarning records a per-file tag write failure.
func (wc *WarningCollector) AddTagWriteWarning(filePath, details string) {
	wc.AddWarning(TagWriteWarning, filePath, "Failed to write tags", details)
}

// AddCoverArtWarning records a cover-art resize or copy problem.
func (wc *WarningCollector) AddCoverArtWarning(album, details string) {
	wc.AddWarning(CoverArtWarning, album, "Could not transfer cover art", details)
}

// AddReplayGainWarning records a loudness-analysis failure.
func (wc *WarningCollector) AddReplayGainWarning(dir, details string) {
	wc.AddWarning(ReplayGainWarning, dir, "ReplayGain analysis failed", details)
}

// AddPregapRemovedWarning records a discarded pre-gap artifact.
func (wc *WarningCollector) AddPregapRemovedWarning(filename string) {
	wc.AddWarning(PregapRemovedWarning, filename, "Removed encoder pre-gap artifact", "")
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return len(wc.warnings) > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	return len(wc.warnings)
}

// GetWarningsByType returns warnings grouped by type
func (wc *WarningCollector) GetWarningsByType() map[WarningType][]Warning {
	grouped := make(map[WarningType][]Warning)
	for _, warning := range wc.warnings {
		grouped[warning.Type] = append(grouped[warning.Type], warning)
	}
	return grouped
}

// PrintSummary prints a formatted summary of all warnings
func (wc *WarningCollector) PrintSummary() {
	if !wc.HasWarnings() {
		return
	}

	ColorWarning.Printf("\n⚠️  Warning Summary (%d warnings):\n", len(wc.warnings))
	ColorWarning.Println(strings.Repeat("─", 50))

	grouped := wc.GetWarningsByType()

	var types []WarningType
	for warningType := range grouped {
		types = append(types, warningType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, warningType := range types {
		wc.printWarningTypeSection(warningType, grouped[warningType])
	}
}

// printWarningTypeSection prints warnings for a specific type
func (wc *WarningCollector) printWarningTypeSection(warningType WarningType, warnings []Warning) {
	if len(warnings) == 0 {
		return
	}

	ColorWarning.Printf("\n%s (%d):\n", wc.getWarningTypeTitle(warningType), len(warnings))

	// Group identical contexts to avoid repetition
	contextCounts := make(map[string]int)
	for _, warning := range warnings {
		contextCounts[warning.Context]++
	}

	var contexts []string
	for context := range contextCounts {
		contexts = append(contexts, context)
	}
	sort.Strings(contexts)

	for _, context := range contexts {
		count := contextCounts[context]
		if count > 1 {
			ColorWarning.Printf("  • %s (×%d)\n", context, count)
		} else {
			ColorWarning.Printf("  • %s\n", context)
		}
	}
}

// getWarningTypeTitle returns a human-readable title for a warning type
func (wc *WarningCollector) getWarningTypeTitle(warningType WarningType) string {
	switch warningType {
	case ProbeWarning:
		return "Audio Image Probe Fallbacks"
	case TagWriteWarning:
		return "Tag Write Failures"
	case CoverArtWarning:
		return "Cover Art Transfer Failures"
	case ReplayGainWarning:
		return "ReplayGain Failures"
	case PregapRemovedWarning:
		return "Pre-gap Artifacts Removed"
	default:
		return fmt.Sprintf("Other Warnings (type %d)", warningType)
	}
}
