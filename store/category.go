package store

import (
	"regexp"
	"strings"
)

var (
	categoryInvalidChars = regexp.MustCompile(`[^a-z0-9_/-]`)
	categoryHyphenRuns   = regexp.MustCompile(`-+`)
)

// SanitizeCategory normalizes a caller-supplied category path into a safe
// directory path. Nested paths like "email-infrastructure/smtp" pass through.
func SanitizeCategory(category string) string {
	category = strings.ToLower(category)
	category = categoryInvalidChars.ReplaceAllString(category, "-")
	category = categoryHyphenRuns.ReplaceAllString(category, "-")
	return strings.Trim(category, "-")
}

// CategoryForType derives a default category from an entry type by
// pluralizing it.
func CategoryForType(entryType string) string {
	if entryType == "api_fact" {
		return "apis"
	}
	switch {
	case strings.HasSuffix(entryType, "y"):
		return entryType[:len(entryType)-1] + "ies"
	case strings.HasSuffix(entryType, "s"), strings.HasSuffix(entryType, "x"), strings.HasSuffix(entryType, "ch"):
		return entryType + "es"
	default:
		return entryType + "s"
	}
}
