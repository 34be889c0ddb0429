package logging

import (
	"io"
	"strings"

	"formsink/upload"
)

type mockIngestRequest struct {
	transactionID string
}

func (r *mockIngestRequest) Headers() []upload.HeaderPair { return nil }
func (r *mockIngestRequest) BodyReader() io.Reader        { return strings.NewReader("") }
func (r *mockIngestRequest) TransactionID() string        { return r.transactionID }
