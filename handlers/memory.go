// Package handlers holds the upload handlers formsink ships with.
package handlers

import (
	"bytes"

	"formsink/upload"
)

// MemoryHandler buffers parts directly in memory. It activates only when the
// whole declared request content length is below the configured threshold,
// and once activated it claims every part; there is no per-part size check
// beyond the whole-request gate.
type MemoryHandler struct {
	upload.BaseHandler
	threshold int64
	activated bool
	meta      upload.PartMeta
	buf       bytes.Buffer
}

// NewMemoryHandler creates a MemoryHandler with the given whole-request threshold.
func NewMemoryHandler(threshold int64) *MemoryHandler {
	return &MemoryHandler{threshold: threshold}
}

// NewFile claims the part when the request is small enough to buffer.
func (h *MemoryHandler) NewFile(meta upload.PartMeta) (upload.Control, error) {
	h.activated = meta.ContentLength <= h.threshold
	if !h.activated {
		return upload.Continue, nil
	}

	h.meta = meta
	h.buf.Reset()
	return upload.ClaimPart, nil
}

// ReceiveDataChunk consumes the chunk into the buffer when activated,
// otherwise passes it through untouched.
func (h *MemoryHandler) ReceiveDataChunk(chunk []byte, start int64) ([]byte, upload.Control, error) {
	if !h.activated {
		return chunk, upload.Continue, nil
	}

	h.buf.Write(chunk)
	return nil, upload.Continue, nil
}

// FileComplete returns the buffered part as a memory-backed UploadedFile.
func (h *MemoryHandler) FileComplete(size int64) (upload.UploadedFile, error) {
	if !h.activated {
		return nil, nil
	}

	data := make([]byte, h.buf.Len())
	copy(data, h.buf.Bytes())
	h.buf.Reset()

	return upload.NewMemoryUploadedFile(h.meta, data), nil
}

// UploadInterrupted drops the partial buffer.
func (h *MemoryHandler) UploadInterrupted() {
	h.buf.Reset()
}
