// Package encoding holds the percent-encoding helpers used when decoding
// RFC 2231 extended header parameters and legacy CGI-escaped filenames.
package encoding

import (
	"bytes"
	"strings"
)

// IsValidPercentEncoding checks whether every percent escape in the given string is well formed.
func IsValidPercentEncoding(content string) bool {
	type validatePercentEncodingState int
	const (
		_ validatePercentEncodingState = iota
		notInEscape
		char1InEscape // This means we've so far seen something like %
		char2InEscape // This means we've so far seen something like %2
	)
	state := notInEscape

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch state {
		case notInEscape:
			if c == '%' {
				state = char1InEscape
			}
		case char1InEscape:
			if isHexChar(c) {
				state = char2InEscape
			} else {
				return false
			}
		case char2InEscape:
			if isHexChar(c) {
				state = notInEscape
			} else {
				return false
			}
		}
	}
	if state != notInEscape {
		return false
	}

	return true
}

// WeakPercentUnescape attempts to percent-unescape, but any escapes that could
// not be decoded are left as is. Filenames come from non-compliant clients, so
// a broken escape must not make the whole value unusable.
func WeakPercentUnescape(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}

	var buf bytes.Buffer
	buf.Grow(len(s)) // The unescaped version is never longer than the escaped one.

	// States for the state machine below
	type percentUnescapeState int
	const (
		_ percentUnescapeState = iota
		notInEscape
		char1InEscape // This means we've so far seen something like %
		char2InEscape // This means we've so far seen something like %2
	)
	state := notInEscape

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case notInEscape:
			if c == '%' {
				state = char1InEscape
			} else {
				buf.WriteByte(c)
			}
		case char1InEscape:
			if isHexChar(c) {
				state = char2InEscape
			} else {
				// This was not a valid escape, so we just leave the bytes as is.
				buf.WriteByte(s[i-1])
				buf.WriteByte(s[i])
				state = notInEscape
			}
		case char2InEscape:
			if isHexChar(c) {
				buf.WriteByte(unhex(s[i-1])<<4 | unhex(s[i]))
				state = notInEscape
			} else {
				// This was not a valid escape, so we just leave the bytes as is.
				buf.WriteByte(s[i-2])
				buf.WriteByte(s[i-1])
				buf.WriteByte(s[i])
				state = notInEscape
			}
		}
	}

	// Did the string end with an unfinished escape sequence?
	if state == char1InEscape {
		buf.WriteByte(s[len(s)-1])
	} else if state == char2InEscape {
		buf.WriteByte(s[len(s)-2])
		buf.WriteByte(s[len(s)-1])
	}

	return buf.String()
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Copied from Go's standard library net/url/url.go.
func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
