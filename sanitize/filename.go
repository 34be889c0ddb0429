// Package sanitize reduces client-supplied upload filenames to safe leaf names.
package sanitize

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"formsink/upload"
)

// MaxFileNameBytes is the longest sanitized filename, extension included.
const MaxFileNameBytes = 255

// FileName reduces a raw client-supplied filename to a safe basename. It
// decodes HTML-entity-encoded separators, discards directory components of
// both separator styles, strips non-printable characters, and truncates to
// MaxFileNameBytes while preserving the extension. Inputs that resolve to
// nothing usable (empty, ".", "..", a bare directory) return
// upload.ErrInvalidFileName, distinct from returning an empty string.
func FileName(name string) (string, error) {
	name = stripNonPrintable(name)

	// Entity-encoded separators such as &#x2F; or &sol; must count as
	// separators. Stripping can uncover an entity that a control character
	// interrupted, and decoding can itself uncover further entities or
	// control characters, so repeat until the name settles.
	for {
		next := stripNonPrintable(basename(html.UnescapeString(name)))
		if next == name {
			break
		}
		name = next
	}

	if name == "" || name == "." || name == ".." {
		return "", upload.ErrInvalidFileName
	}

	return truncate(name, MaxFileNameBytes), nil
}

// basename discards directory components of both separator styles.
func basename(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate shortens name to at most max bytes, keeping the extension intact
// as long as the extension itself fits the budget.
func truncate(name string, max int) string {
	if len(name) <= max {
		return name
	}

	ext := ""
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		ext = name[i:]
	}
	if len(ext) > max {
		ext = cutAtRuneBoundary(ext, max)
	}

	stem := name[:len(name)-len(ext)]
	stem = cutAtRuneBoundary(stem, max-len(ext))
	return stem + ext
}

// cutAtRuneBoundary cuts s to at most max bytes without splitting a rune.
func cutAtRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
