package bodyparsing

import (
	"encoding/base64"
	"fmt"

	"formsink/upload"
)

// transferDecoder applies a part's Content-Transfer-Encoding to its body
// bytes as they stream past.
type transferDecoder interface {
	decode(chunk []byte) ([]byte, error)
	flush() ([]byte, error)
}

// newTransferDecoder returns the decoder for the given Content-Transfer-Encoding.
// Absent or unrecognized encodings pass bytes through unchanged.
func newTransferDecoder(encoding string) transferDecoder {
	if encoding == "base64" {
		return &base64Decoder{}
	}
	return identityDecoder{}
}

type identityDecoder struct{}

func (identityDecoder) decode(chunk []byte) ([]byte, error) { return chunk, nil }
func (identityDecoder) flush() ([]byte, error)              { return nil, nil }

// base64Decoder buffers incoming bytes to a multiple of 4 before decoding, so
// a base64 quantum split across two chunks still decodes. Bytes outside the
// base64 alphabet (line breaks, stray garbage) are discarded rather than
// corrupting the output, the way non-validating decoders behave.
type base64Decoder struct {
	pending []byte
}

func (d *base64Decoder) decode(chunk []byte) (out []byte, err error) {
	for _, c := range chunk {
		if isBase64Char(c) {
			d.pending = append(d.pending, c)
		}
	}

	n := len(d.pending) - len(d.pending)%4
	if n == 0 {
		return
	}

	out = make([]byte, base64.StdEncoding.DecodedLen(n))
	m, err := base64.StdEncoding.Decode(out, d.pending[:n])
	if err != nil {
		out = nil
		err = fmt.Errorf("%w: %v", upload.ErrTransferDecode, err)
		return
	}
	out = out[:m]

	d.pending = append(d.pending[:0], d.pending[n:]...)
	return
}

// flush reports a leftover partial quantum at end of part as a decode error.
func (d *base64Decoder) flush() (out []byte, err error) {
	if len(d.pending) != 0 {
		err = fmt.Errorf("%w: %d leftover base64 bytes at end of part", upload.ErrTransferDecode, len(d.pending))
	}
	return
}

func isBase64Char(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '+' || c == '/' || c == '='
}
