package utils

import "github.com/microcosm-cc/bluemonday"

// Chat content is plain text; strip all markup instead of allowing a UGC
// subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user supplied content to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
