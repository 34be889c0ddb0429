package handlers

import (
	"formsink/upload"
)

// ContentScanHandler scans decoded upload bytes against a set of signature
// regexes and stops all uploads with a connection tear down on a match. The
// regex engine is compiled lazily on the first part, since a handler instance
// is request-scoped and engine scratch memory must not be shared.
type ContentScanHandler struct {
	upload.BaseHandler
	factory    upload.MultiRegexEngineFactory
	signatures []string
	engine     upload.MultiRegexEngine
}

// NewContentScanHandler creates a ContentScanHandler over the given signatures.
func NewContentScanHandler(factory upload.MultiRegexEngineFactory, signatures []string) *ContentScanHandler {
	return &ContentScanHandler{factory: factory, signatures: signatures}
}

// NewFile compiles the signature engine if that has not happened yet.
func (h *ContentScanHandler) NewFile(meta upload.PartMeta) (upload.Control, error) {
	if h.engine != nil || len(h.signatures) == 0 {
		return upload.Continue, nil
	}

	patterns := make([]upload.MultiRegexEnginePattern, 0, len(h.signatures))
	for i, expr := range h.signatures {
		patterns = append(patterns, upload.MultiRegexEnginePattern{ID: i, Expr: expr})
	}

	engine, err := h.factory.NewMultiRegexEngine(patterns)
	if err != nil {
		return upload.Continue, err
	}

	h.engine = engine
	return upload.Continue, nil
}

// ReceiveDataChunk scans the chunk and aborts the upload on any signature match.
func (h *ContentScanHandler) ReceiveDataChunk(chunk []byte, start int64) ([]byte, upload.Control, error) {
	if h.engine == nil {
		return chunk, upload.Continue, nil
	}

	matches, err := h.engine.Scan(chunk)
	if err != nil {
		return nil, upload.Continue, err
	}
	if len(matches) > 0 {
		return nil, upload.AbortTearDown, nil
	}

	return chunk, upload.Continue, nil
}

// UploadComplete releases the compiled engine.
func (h *ContentScanHandler) UploadComplete() {
	h.close()
}

// UploadInterrupted releases the compiled engine.
func (h *ContentScanHandler) UploadInterrupted() {
	h.close()
}

func (h *ContentScanHandler) close() {
	if h.engine != nil {
		h.engine.Close()
		h.engine = nil
	}
}
