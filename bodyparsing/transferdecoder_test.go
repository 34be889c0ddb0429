package bodyparsing

import (
	"encoding/base64"
	"errors"
	"testing"

	"formsink/upload"
)

func TestBase64DecoderAcrossChunks(t *testing.T) {
	// Arrange
	encoded := base64.StdEncoding.EncodeToString([]byte("hello world, hello world"))
	d := &base64Decoder{}

	// Act
	// Split at an offset that is not a multiple of 4, so a quantum straddles.
	out1, err1 := d.decode([]byte(encoded[:5]))
	out2, err2 := d.decode([]byte(encoded[5:]))
	out3, err3 := d.flush()

	// Assert
	if err1 != nil || err2 != nil || err3 != nil {
		t.Fatalf("Got unexpected errors: %v, %v, %v", err1, err2, err3)
	}

	got := string(out1) + string(out2) + string(out3)
	if got != "hello world, hello world" {
		t.Fatalf("Got unexpected decoded content: %q", got)
	}
}

func TestBase64DecoderSkipsLineBreaks(t *testing.T) {
	// Arrange
	encoded := base64.StdEncoding.EncodeToString([]byte("hello world"))
	d := &base64Decoder{}

	// Act
	out, err := d.decode([]byte(encoded[:8] + "\r\n" + encoded[8:] + "\r\n"))
	_, ferr := d.flush()

	// Assert
	if err != nil || ferr != nil {
		t.Fatalf("Got unexpected errors: %v, %v", err, ferr)
	}

	if string(out) != "hello world" {
		t.Fatalf("Got unexpected decoded content: %q", out)
	}
}

func TestBase64DecoderGarbageOnlyDecodesToNothing(t *testing.T) {
	// Arrange
	d := &base64Decoder{}

	// Act
	out, err := d.decode([]byte("!"))
	rest, ferr := d.flush()

	// Assert
	if err != nil || ferr != nil {
		t.Fatalf("Got unexpected errors: %v, %v", err, ferr)
	}

	if len(out) != 0 || len(rest) != 0 {
		t.Fatalf("Got unexpected decoded content: %q, %q", out, rest)
	}
}

func TestBase64DecoderLeftoverQuantum(t *testing.T) {
	// Arrange
	d := &base64Decoder{}

	// Act
	_, err := d.decode([]byte("abcde"))
	_, ferr := d.flush()

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected decode error: %v", err)
	}

	if !errors.Is(ferr, upload.ErrTransferDecode) {
		t.Fatalf("Expected ErrTransferDecode, got %T: %v", ferr, ferr)
	}
}

func TestNewTransferDecoderUnknownEncodingIsIdentity(t *testing.T) {
	// Arrange
	d := newTransferDecoder("quoted-printable")

	// Act
	out, err := d.decode([]byte("abc=3D"))

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if string(out) != "abc=3D" {
		t.Fatalf("Got unexpected content: %q", out)
	}
}
