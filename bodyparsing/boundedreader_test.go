package bodyparsing

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"formsink/testutils"
	"formsink/upload"
)

func TestBoundedReaderStopsAtContentLength(t *testing.T) {
	// Arrange
	m := &testutils.MockReader{Length: 1024 * 1024, Content: []byte("abcdefgh")}
	r := newBoundedReader(m, 100)
	b := &bytes.Buffer{}

	// Act
	n, err := b.ReadFrom(r)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if n != 100 {
		t.Fatalf("Got unexpected number of bytes: %v", n)
	}
}

func TestBoundedReaderWrapsTransportErrors(t *testing.T) {
	// Arrange
	cause := errors.New("connection reset")
	r := newBoundedReader(&erringReader{err: cause}, 100)
	buf := make([]byte, 10)

	// Act
	_, err1 := r.Read(buf)
	_, err2 := r.Read(buf)

	// Assert
	var uie *upload.UnreadableInputError
	if !errors.As(err1, &uie) {
		t.Fatalf("Got unexpected error type %T: %v", err1, err1)
	}

	if uie.Cause != cause {
		t.Fatalf("Got unexpected cause: %v", uie.Cause)
	}

	if err2 != err1 {
		t.Fatalf("Expected the transport error to be sticky, got: %v", err2)
	}
}

func TestBoundedReaderReadLine(t *testing.T) {
	// Arrange
	body := "first line\r\nsecond line\r\nrest"
	r := newBoundedReader(strings.NewReader(body), int64(len(body)))

	// Act
	line1, err1 := r.ReadLine(100)
	line2, err2 := r.ReadLine(100)
	line3, err3 := r.ReadLine(100)

	// Assert
	if err1 != nil || err2 != nil || err3 != nil {
		t.Fatalf("Got unexpected errors: %v, %v, %v", err1, err2, err3)
	}

	if string(line1) != "first line\r\n" {
		t.Fatalf("Got unexpected line 1: %q", line1)
	}

	if string(line2) != "second line\r\n" {
		t.Fatalf("Got unexpected line 2: %q", line2)
	}

	if string(line3) != "rest" {
		t.Fatalf("Got unexpected line 3: %q", line3)
	}
}

func TestBoundedReaderReadLineMax(t *testing.T) {
	// Arrange
	body := "aaaaaaaaaaaaaaaaaaaa\r\n"
	r := newBoundedReader(strings.NewReader(body), int64(len(body)))

	// Act
	line, err := r.ReadLine(10)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if string(line) != "aaaaaaaaaa" {
		t.Fatalf("Got unexpected line: %q", line)
	}
}

type erringReader struct {
	err error
}

func (r *erringReader) Read(p []byte) (int, error) {
	return 0, r.err
}

var _ io.Reader = &erringReader{}
