package middleware

import (
	"regexp"
	"strings"
	"unicode"
)

var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// SanitizeID sanitizes an identifier taken from a path or query parameter
func SanitizeID(id string) string {
	// Remove whitespace
	id = strings.TrimSpace(id)

	// Remove null bytes
	id = strings.ReplaceAll(id, "\x00", "")

	// Remove any non-alphanumeric characters except hyphens and underscores
	invalid := regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	return invalid.ReplaceAllString(id, "")
}

// ValidateID validates that an ID is in a valid format
func ValidateID(id string) bool {
	if id == "" {
		return false
	}
	return validIDPattern.MatchString(id)
}

// SanitizeSlot normalizes a slot label from a query parameter. Slot labels
// use only digits, colons and a hyphen ("09:00-10:00").
func SanitizeSlot(slot string) string {
	slot = strings.TrimSpace(slot)
	slot = strings.ReplaceAll(slot, "\x00", "")
	return removeControlChars(slot)
}

// removeControlChars removes control characters from a string
func removeControlChars(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
