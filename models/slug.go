package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a post title or category name: letters
// and digits are lower-cased, every other run of characters collapses into a
// single hyphen, and leading or trailing hyphens are dropped.
func Slugify(title string) string {
	var result strings.Builder
	pendingHyphen := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && result.Len() > 0 {
				result.WriteByte('-')
			}
			pendingHyphen = false
			result.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingHyphen = true
	}
	return result.String()
}

// TagSlug derives a tag slug: the name lower-cased with spaces replaced by hyphens.
func TagSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// SlugCandidate returns base for attempt 1 and base-N for later attempts.
func SlugCandidate(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
