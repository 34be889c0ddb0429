package upload

import (
	"io"
)

// HeaderPair represents a header line in an HTTP request.
type HeaderPair interface {
	Key() string
	Value() string
}

// Request represents an HTTP-like request whose body is to be ingested.
type Request interface {
	Headers() []HeaderPair
	BodyReader() io.Reader
	TransactionID() string
}
