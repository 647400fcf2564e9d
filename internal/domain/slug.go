package domain

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// slugRule accepts empty values and canonical slugs.
var slugRule = validation.NewStringRule(IsSlug, "must be a lowercase hyphenated slug")

// Slugify lowercases name and replaces every run of non-alphanumeric characters with a
// single hyphen. Leading and trailing hyphens are trimmed, so "Cyber First Kuwait 2026!"
// becomes "cyber-first-kuwait-2026". The result may be empty.
func Slugify(name string) string {
	s := nonAlphanumericRun.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// IsSlug reports whether s is already in canonical slug form.
func IsSlug(s string) bool {
	return s != "" && Slugify(s) == s
}
