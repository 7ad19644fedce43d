package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat is the serialization format of a loaded document.
type SourceFormat string

const (
	// SourceFormatYAML indicates a YAML document.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates a JSON document.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown is used for empty input.
	SourceFormatUnknown SourceFormat = "unknown"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// DetectFormat reports the format the loader would use for data: JSON when
// the first non-blank character is '{' or '[', YAML otherwise, and unknown for
// blank input.
func DetectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// formatFromPath guesses the format from a file extension.
func formatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// IsSpecFile reports whether path has an extension the loader recognises.
func IsSpecFile(path string) bool {
	return formatFromPath(path) != SourceFormatUnknown
}
