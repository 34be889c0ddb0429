package bodyparsing

import (
	"bytes"
	"io"

	"formsink/upload"
)

// boundedReader wraps the raw request body stream and never yields more than
// the declared content length, even across repeated calls. Once the budget is
// exhausted further reads return io.EOF without touching the transport.
type boundedReader struct {
	reader    io.Reader
	remaining int64
	buf       []byte
	lastErr   error
}

func newBoundedReader(reader io.Reader, contentLength int64) *boundedReader {
	return &boundedReader{reader: reader, remaining: contentLength}
}

// Read behaves like io.Reader.Read within the declared byte budget. Transport
// failures are wrapped into UnreadableInputError, and the wrapped error is
// sticky: every subsequent call reports it again rather than pretending the
// stream recovered. This guards against retry loops in error handlers that
// inspect the raw request body.
func (b *boundedReader) Read(p []byte) (n int, err error) {
	if len(b.buf) > 0 {
		n = copy(p, b.buf)
		b.buf = b.buf[n:]
		return
	}

	if b.lastErr != nil {
		err = b.lastErr
		return
	}

	if b.remaining <= 0 {
		err = io.EOF
		return
	}

	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}

	n, err = b.reader.Read(p)
	b.remaining -= int64(n)

	if err != nil && err != io.EOF {
		err = &upload.UnreadableInputError{Cause: err}
		b.lastErr = err
	}

	return
}

// ReadLine returns up to max bytes, stopping after the first newline. The
// newline is included in the returned bytes. Like Read, it never goes past
// the declared content length, and returns empty once exhausted.
func (b *boundedReader) ReadLine(max int) (line []byte, err error) {
	for {
		if i := bytes.IndexByte(b.buf, '\n'); i >= 0 && i < max {
			line = b.buf[:i+1]
			b.buf = b.buf[i+1:]
			return
		}

		if len(b.buf) >= max {
			line = b.buf[:max]
			b.buf = b.buf[max:]
			return
		}

		var n int
		n, err = b.fill()
		if err != nil || n == 0 {
			line = b.buf
			b.buf = nil
			if len(line) > 0 && err == io.EOF {
				// A final unterminated line is data, not an error yet.
				err = nil
			}
			return
		}
	}
}

// fill pulls more bytes from the transport into the internal buffer.
func (b *boundedReader) fill() (n int, err error) {
	if b.lastErr != nil {
		err = b.lastErr
		return
	}

	if b.remaining <= 0 {
		err = io.EOF
		return
	}

	chunk := make([]byte, 8192)
	if int64(len(chunk)) > b.remaining {
		chunk = chunk[:b.remaining]
	}

	n, err = b.reader.Read(chunk)
	b.remaining -= int64(n)
	b.buf = append(b.buf, chunk[:n]...)

	if err != nil && err != io.EOF {
		err = &upload.UnreadableInputError{Cause: err}
		b.lastErr = err
	}

	return
}
