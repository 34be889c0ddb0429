package upload

import (
	"errors"
	"fmt"
)

// ErrInvalidContentType is returned when the request Content-Type is not a multipart media type.
var ErrInvalidContentType = errors.New("invalid Content-Type")

// ErrInvalidContentLength is returned when the request Content-Length is negative.
var ErrInvalidContentLength = errors.New("invalid Content-Length")

// ErrHeaderTooLarge is returned when the cumulative header bytes of a part exceed the configured maximum.
var ErrHeaderTooLarge = errors.New("request max total header size exceeded")

// ErrTransferDecode is returned when a part body could not be decoded according to its Content-Transfer-Encoding.
var ErrTransferDecode = errors.New("could not decode transfer encoded chunk")

// ErrInvalidFileName is returned by the filename sanitizer when the input resolves to no usable filename.
var ErrInvalidFileName = errors.New("no usable filename")

// ErrStopUpload is the parser-internal signal that a handler stopped all uploads.
var ErrStopUpload = errors.New("upload stopped by handler")

// ErrConnectionTearDown is the ErrStopUpload variant where the handler asked for
// the connection to be abandoned rather than the remaining body drained.
var ErrConnectionTearDown = fmt.Errorf("%w: connection tear down requested", ErrStopUpload)

// BoundaryError is returned when the multipart boundary parameter is missing or invalid.
// The offending value is embedded for diagnostics.
type BoundaryError struct {
	Boundary string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("invalid multipart boundary: %q", e.Boundary)
}

// UnreadableInputError is returned when the underlying transport failed mid-read.
// It is distinguishable from ordinary I/O errors so error handlers that inspect
// the raw request body do not end up in retry loops.
type UnreadableInputError struct {
	Cause error
}

func (e *UnreadableInputError) Error() string {
	return fmt.Sprintf("error reading request body: %v", e.Cause)
}

func (e *UnreadableInputError) Unwrap() error { return e.Cause }
