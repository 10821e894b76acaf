package validator

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-slug"
)

// NormalizeAnchor reduces an anchor id to its comparison form: URL-decoded,
// case-insensitive, dash/space-insensitive. Two anchors fuzzy-match exactly
// when their normalized forms are equal.
func NormalizeAnchor(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		decoded = value
	}

	normalized, err := slug.Normalize(decoded)
	if err != nil || normalized == "" {
		return fallbackNormalize(decoded)
	}
	return normalized
}

func fallbackNormalize(value string) string {
	lowered := strings.ToLower(value)
	lowered = strings.ReplaceAll(lowered, "-", " ")
	return strings.Join(strings.Fields(lowered), "-")
}
