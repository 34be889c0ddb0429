package bodyparsing

import (
	"bytes"
	"errors"
	"io"
)

// errTruncated signals that the stream ended before the current part was
// fully delimited. The parser recovers from it; it never escapes to callers.
var errTruncated = errors.New("multipart stream truncated")

type scannerState int

// States for the scanner state machine
const (
	seekBoundary scannerState = iota
	inHeaders
	inBody
	scanDone
)

type delimiterSuffix int

const (
	suffixOpen delimiterSuffix = iota
	suffixFinal
	suffixNotBoundary
	suffixNeedMore
)

// boundaryScanner locates part separators inside the body stream without the
// full body ever being resident in memory. A boundary marker straddling two
// read chunks is still found, because the scanner always retains a trailing
// window one byte shorter than the marker.
type boundaryScanner struct {
	reader    *boundedReader
	delimiter []byte
	buf       []byte
	chunkSize int
	state     scannerState
	truncated bool
	eof       bool
}

func newBoundaryScanner(reader *boundedReader, boundary string, chunkSize int) *boundaryScanner {
	if chunkSize < 64 {
		chunkSize = 64
	}
	return &boundaryScanner{
		reader:    reader,
		delimiter: []byte("\r\n--" + boundary),
		chunkSize: chunkSize,

		// Seeding the buffer with a CRLF lets a boundary at the very start
		// of the body match the same "\r\n--boundary" marker as all others.
		buf: []byte("\r\n"),
	}
}

// nextPart consumes the stream up to the start of the next part's header
// block. It returns false when there are no more parts: either the terminal
// boundary was seen, or the stream ended. Truncated input is not an error.
func (s *boundaryScanner) nextPart() (found bool, err error) {
	if s.state == scanDone {
		return
	}
	s.state = seekBoundary

	for {
		i := bytes.Index(s.buf, s.delimiter)
		if i >= 0 {
			rest := s.buf[i+len(s.delimiter):]
			kind, consumed := classifyDelimiterSuffix(rest)

			switch kind {
			case suffixNeedMore:
				if !s.eof {
					var n int
					n, err = s.fill()
					if n > 0 {
						continue
					}
					if err != nil && err != io.EOF {
						return
					}
					err = nil
				}
				// Boundary line cut off by end of stream.
				s.truncated = true
				s.state = scanDone
				return

			case suffixFinal:
				s.state = scanDone
				return

			case suffixOpen:
				s.buf = rest[consumed:]
				s.state = inHeaders
				found = true
				return

			case suffixNotBoundary:
				// The marker diverged after the boundary string. Keep seeking
				// past the CRLF that started the false match.
				s.buf = s.buf[i+2:]
				continue
			}
		}

		// No marker in the buffered bytes. Everything except the trailing
		// window is preamble or inter-part noise and can be dropped.
		if keep := len(s.delimiter) - 1; len(s.buf) > keep {
			s.buf = s.buf[len(s.buf)-keep:]
		}

		var n int
		n, err = s.fill()
		if n == 0 {
			if err == nil || err == io.EOF {
				// Stream over with no further boundary: no more parts.
				err = nil
				s.truncated = true
				s.state = scanDone
			}
			return
		}
	}
}

// readBodyChunk returns the next run of body bytes of the current part.
// last is true once the part's terminating boundary was seen; the boundary
// itself is left in the buffer for nextPart. Truncation surfaces as
// errTruncated so the caller can treat the part as interrupted.
func (s *boundaryScanner) readBodyChunk() (data []byte, last bool, err error) {
	s.state = inBody

	for {
		i := bytes.Index(s.buf, s.delimiter)

		if i > 0 {
			// Everything before the marker is body data no matter how the
			// marker classifies.
			data = s.buf[:i]
			s.buf = s.buf[i:]
			return
		}

		if i == 0 {
			kind, _ := classifyDelimiterSuffix(s.buf[len(s.delimiter):])
			switch kind {
			case suffixOpen, suffixFinal:
				s.state = seekBoundary
				last = true
				return

			case suffixNotBoundary:
				// The boundary string appeared as a prefix of unrelated body
				// data. Hand back the CRLF and keep scanning after it.
				data = s.buf[:2]
				s.buf = s.buf[2:]
				return

			case suffixNeedMore:
				var n int
				n, err = s.fill()
				if n == 0 {
					if err == nil || err == io.EOF {
						s.truncated = true
						s.state = scanDone
						err = errTruncated
					}
					return
				}
				err = nil
				continue
			}
		}

		if keep := len(s.delimiter) - 1; len(s.buf) > keep {
			data = s.buf[:len(s.buf)-keep]
			s.buf = s.buf[len(s.buf)-keep:]
			return
		}

		var n int
		n, err = s.fill()
		if n == 0 {
			if err == nil || err == io.EOF {
				s.truncated = true
				s.state = scanDone
				err = errTruncated
			}
			return
		}
	}
}

// ReadLine serves the part's header lines out of the scanner's buffer, so the
// header lexer consumes exactly up to the blank line and no further.
func (s *boundaryScanner) ReadLine(max int) (line []byte, err error) {
	for {
		if i := bytes.IndexByte(s.buf, '\n'); i >= 0 && i < max {
			line = s.buf[:i+1]
			s.buf = s.buf[i+1:]
			return
		}

		if len(s.buf) >= max {
			line = s.buf[:max]
			s.buf = s.buf[max:]
			return
		}

		var n int
		n, err = s.fill()
		if n == 0 {
			if err == nil || err == io.EOF {
				line = s.buf
				s.buf = nil
				if len(line) > 0 {
					err = nil
					return
				}
				err = io.EOF
			}
			return
		}
	}
}

// fill pulls one more chunk from the bounded reader into the buffer.
func (s *boundaryScanner) fill() (n int, err error) {
	if s.eof {
		err = io.EOF
		return
	}

	chunk := make([]byte, s.chunkSize)
	n, err = s.reader.Read(chunk)
	s.buf = append(s.buf, chunk[:n]...)
	if err == io.EOF {
		s.eof = true
	}
	return
}

// classifyDelimiterSuffix decides what the bytes following "\r\n--boundary"
// mean: "--" terminates the whole parse, a (possibly padded) line end opens
// the next part, anything else means the boundary string merely appeared as
// a prefix of unrelated data.
func classifyDelimiterSuffix(rest []byte) (kind delimiterSuffix, consumed int) {
	if len(rest) == 0 {
		kind = suffixNeedMore
		return
	}

	if rest[0] == '-' {
		if len(rest) < 2 {
			kind = suffixNeedMore
			return
		}
		if rest[1] == '-' {
			kind = suffixFinal
			return
		}
		kind = suffixNotBoundary
		return
	}

	// Tolerate transport padding between the boundary and the line end.
	j := 0
	for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
		j++
	}
	if j == len(rest) {
		kind = suffixNeedMore
		return
	}

	switch rest[j] {
	case '\n':
		kind = suffixOpen
		consumed = j + 1
	case '\r':
		if j+1 == len(rest) {
			kind = suffixNeedMore
			return
		}
		if rest[j+1] == '\n' {
			kind = suffixOpen
			consumed = j + 2
		} else {
			kind = suffixNotBoundary
		}
	default:
		kind = suffixNotBoundary
	}
	return
}
