// Package htmlsanitize strips markup from text that is echoed back to
// clients, such as error messages built from request data.
package htmlsanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element; script and style bodies are dropped.
// A bluemonday policy is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// StripTags returns s with all HTML elements removed, as plain
// (unescaped) text.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strict.Sanitize(s))
}
