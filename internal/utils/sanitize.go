package utils

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9\-\s]+`)

// Sanitize strips characters unsafe for object keys and file names,
// falling back to def when nothing survives.
func Sanitize(text, def string) string {
	clean := nonAlnum.ReplaceAllString(text, "")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), " ", "_")
	if clean == "" {
		return def
	}
	return clean
}
