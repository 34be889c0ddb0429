package handlers

import (
	"formsink/upload"
)

// QuotaHandler watches the cumulative upload bytes of a request and stops all
// uploads with a connection tear down once they exceed the quota. It never
// claims parts itself; install it ahead of the storing handlers so it sees
// every chunk.
type QuotaHandler struct {
	upload.BaseHandler
	quota int64
	total int64
}

// NewQuotaHandler creates a QuotaHandler. A zero or negative quota disables it.
func NewQuotaHandler(quota int64) *QuotaHandler {
	return &QuotaHandler{quota: quota}
}

// ReceiveDataChunk counts the chunk and aborts once the quota is exceeded.
func (h *QuotaHandler) ReceiveDataChunk(chunk []byte, start int64) ([]byte, upload.Control, error) {
	h.total += int64(len(chunk))
	if h.quota > 0 && h.total > h.quota {
		return nil, upload.AbortTearDown, nil
	}
	return chunk, upload.Continue, nil
}
