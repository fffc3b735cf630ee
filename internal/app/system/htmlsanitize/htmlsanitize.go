// Package htmlsanitize strips markup from free-text fields before they
// are persisted (work-query descriptions and responses, briefing
// content, task remarks).
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
