// utils/validator.go - Input validation
package utils

import "strings"

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// ValidateIdentifier checks an opaque homework/group/submission id.
// Ids come from external systems, so only emptiness is rejected.
func ValidateIdentifier(id string) bool {
	return SanitizeInput(id) != ""
}
