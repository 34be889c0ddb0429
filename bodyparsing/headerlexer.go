package bodyparsing

import (
	"strings"

	"formsink/encoding"
	"formsink/upload"
)

// lineReader yields one header line at a time, newline included.
type lineReader interface {
	ReadLine(max int) ([]byte, error)
}

// partHeaders is the structured header set of one part.
type partHeaders struct {
	disposition      string
	name             string
	fileName         string
	hasFileName      bool
	contentType      string
	contentTypeExtra map[string]string
	charset          string
	transferEncoding string
	extra            map[string]string
}

// headerLexer parses a single part's header block, up to the blank line that
// terminates it. The cumulative bytes of all header lines in the part must
// stay within maxHeaderBytes; exceeding it is fatal for the whole request,
// which is the defense against header flood requests.
type headerLexer struct {
	maxHeaderBytes int
}

func (l *headerLexer) parse(r lineReader) (h *partHeaders, err error) {
	h = &partHeaders{
		contentTypeExtra: make(map[string]string),
		extra:            make(map[string]string),
	}

	total := 0
	for {
		var line []byte
		line, err = r.ReadLine(l.maxHeaderBytes + 2)
		if err != nil {
			return
		}

		total += len(line)
		if total > l.maxHeaderBytes {
			err = upload.ErrHeaderTooLarge
			return
		}

		s := strings.TrimRight(string(line), "\r\n")
		if s == "" {
			// Blank line: end of headers, body follows.
			return
		}

		colon := strings.IndexByte(s, ':')
		if colon < 0 {
			// Not a header line. Non-compliant clients produce these; tolerate by skipping.
			continue
		}

		// Header bytes are decoded leniently. Filenames can arrive from
		// clients that put raw non-ASCII bytes here.
		key := strings.TrimSpace(s[:colon])
		value := strings.TrimSpace(s[colon+1:])

		switch strings.ToLower(key) {
		case "content-disposition":
			var params map[string]string
			h.disposition, params = parseHeaderParameters(value)
			h.name = params["name"]
			if fn, ok := extractFileName(params); ok {
				h.fileName = fn
				h.hasFileName = true
			}
		case "content-type":
			var params map[string]string
			h.contentType, params = parseHeaderParameters(value)
			for k, v := range params {
				h.contentTypeExtra[k] = v
			}
			h.charset = params["charset"]
		case "content-transfer-encoding":
			h.transferEncoding = strings.ToLower(value)
		default:
			h.extra[key] = value
		}
	}
}

// extractFileName picks the part filename out of the Content-Disposition
// parameters. The RFC 2231 extended form wins over the plain form. A plain
// value that is entirely made of valid percent escapes is unescaped, to
// handle legacy CGI-escaped filenames.
func extractFileName(params map[string]string) (name string, ok bool) {
	if v, present := params["filename*"]; present {
		return decodeExtendedValue(v), true
	}

	v, present := params["filename"]
	if !present {
		return
	}

	if strings.ContainsRune(v, '%') && encoding.IsValidPercentEncoding(v) {
		v = encoding.WeakPercentUnescape(v)
	}
	return v, true
}

// decodeExtendedValue decodes an RFC 2231 charset'lang'pct-encoded value.
// Malformed extended values that lack the charset'lang' prefix are passed
// through rather than rejected.
func decodeExtendedValue(v string) string {
	first := strings.IndexByte(v, '\'')
	if first < 0 {
		return encoding.WeakPercentUnescape(v)
	}
	second := strings.IndexByte(v[first+1:], '\'')
	if second < 0 {
		return encoding.WeakPercentUnescape(v)
	}

	// The charset is recorded but not transcoded: values are kept as the raw
	// decoded bytes.
	return encoding.WeakPercentUnescape(v[first+1+second+1:])
}

// parseHeaderParameters splits a header value of the shape
// "main; key=value; key*=extended" into its main value and parameters.
// Parameter values may be unquoted, or quoted with backslash-escaped quotes.
// Unknown parameters are retained verbatim.
func parseHeaderParameters(value string) (main string, params map[string]string) {
	params = make(map[string]string)

	parts := splitParameters(value)
	if len(parts) == 0 {
		return
	}

	main = strings.ToLower(strings.TrimSpace(parts[0]))

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(part[:eq]))
		val := strings.TrimSpace(part[eq+1:])
		params[key] = unquoteParameter(val)
	}

	return
}

// splitParameters splits on semicolons that are not inside a quoted string.
func splitParameters(value string) (parts []string) {
	start := 0
	inQuotes := false
	escaped := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inQuotes:
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case c == ';' && !inQuotes:
			parts = append(parts, value[start:i])
			start = i + 1
		}
	}
	parts = append(parts, value[start:])
	return
}

// unquoteParameter strips surrounding quotes and resolves backslash escapes.
func unquoteParameter(v string) string {
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return v
	}
	v = v[1 : len(v)-1]
	if !strings.ContainsRune(v, '\\') {
		return v
	}

	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			i++
		}
		b.WriteByte(v[i])
	}
	return b.String()
}
