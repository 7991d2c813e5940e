package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxDeckNameLength bounds deck names accepted from URLs and file names.
const maxDeckNameLength = 128

// ValidateDeckName validates a deck name for safety and correctness.
// Deck names become file names and URL path segments, so the rules are
// conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., /, \)
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateDeckName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDeckName, "deck name cannot be empty")
	}

	if len(name) > maxDeckNameLength {
		return New(ErrCodeInvalidDeckName, "deck name too long (max %d characters)", maxDeckNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDeckName, "deck name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDeckName, "deck name contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidDeckName, "deck name cannot start with a dot")
	}

	return nil
}

// formatRegex matches output format identifiers (pdf, svg, ...).
var formatRegex = regexp.MustCompile(`^[a-z0-9]+$`)

// ValidateFormatName checks that a format identifier is syntactically sane.
// Whether the format is supported is decided by the pipeline.
func ValidateFormatName(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !formatRegex.MatchString(format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	return nil
}
