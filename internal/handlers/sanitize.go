package handlers

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML from user-supplied free text (names,
// descriptions, check-in notes) before it is stored.
var strictPolicy = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
