// Package webpath turns single path segments into ASCII-safe, URL-legal
// slugs. Every output-relative URL in the generated site is built by encoding
// each segment individually and joining the results; a joined path is never
// slugified as a whole.
package webpath

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptySegment is returned for "" input; there is nothing to slugify.
	ErrEmptySegment = errors.New("empty path segment")
	// ErrMultiSegment is returned when the input contains a path separator.
	// Callers must encode one segment at a time.
	ErrMultiSegment = errors.New("path segment contains a separator")
)

// stripMarks removes combining marks after canonical decomposition, so that
// for example "ü" becomes "u".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ToWebSegment converts a single path component into a slug containing only
// [a-z0-9-.]. If the segment ends in a ".ext" suffix, the base name and the
// extension are slugified independently so the extension survives in place.
func ToWebSegment(segment string) (string, error) {
	if segment == "" {
		return "", ErrEmptySegment
	}
	if strings.ContainsAny(segment, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrMultiSegment, segment)
	}

	base, ext, hasExt := splitExtension(segment)
	out, err := slugify(base)
	if err != nil {
		return "", fmt.Errorf("slugify %q: %w", segment, err)
	}
	if hasExt {
		extSlug, err := slugify(ext)
		if err != nil {
			return "", fmt.Errorf("slugify extension of %q: %w", segment, err)
		}
		out = out + "." + extSlug
	}
	if out == "" || out == "." {
		return "", fmt.Errorf("segment %q has no usable characters", segment)
	}
	return out, nil
}

// Join joins already-encoded segments with forward slashes.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// splitExtension splits "name.ext" into ("name", "ext", true). Leading dots
// and trailing dots do not count as extension separators.
func splitExtension(s string) (string, string, bool) {
	idx := strings.LastIndexByte(s, '.')
	if idx <= 0 || idx == len(s)-1 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

func slugify(s string) (string, error) {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return "", err
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
