package upload

// Control is a handler's verdict on how processing should proceed after a callback.
type Control int

const (
	// Continue means the handler declined involvement and the next handler should be consulted.
	Continue Control = iota

	// ClaimPart means the handler owns the current part. No further handler's NewFile runs for it.
	ClaimPart

	// SkipPart means the current part is discarded. Parsing continues with the next part.
	SkipPart

	// AbortDrain stops all uploads but leaves the remaining request body to be drained,
	// so the connection is not left in an inconsistent state.
	AbortDrain

	// AbortTearDown stops all uploads and abandons the connection immediately.
	AbortTearDown
)

// PartMeta describes one part as seen by NewFile, before any body bytes arrive.
type PartMeta struct {
	FieldName string

	// FileName is the sanitized client-supplied filename.
	FileName string

	ContentType string

	// ContentLength is the declared content length of the whole request, as a sizing hint.
	ContentLength int64

	Charset string

	// ContentTypeExtra holds extra Content-Type parameters of the part, verbatim.
	ContentTypeExtra map[string]string
}

// Handler is the per-part lifecycle contract an upload handler implements.
// Handlers are consulted in list order; the first handler that claims a part wins.
type Handler interface {
	// NewFile signals that a new file-bearing part has started.
	NewFile(meta PartMeta) (Control, error)

	// ReceiveDataChunk is called repeatedly as body bytes arrive for the part.
	// The returned slice is handed to the next handler in the chain; nil means
	// the chunk was consumed and propagation stops.
	ReceiveDataChunk(chunk []byte, start int64) ([]byte, Control, error)

	// FileComplete is called once the terminating boundary of the part was seen.
	// A nil UploadedFile means this handler produced no file and the next one is consulted.
	FileComplete(size int64) (UploadedFile, error)

	// UploadComplete is called once after all parts of the request have been processed.
	UploadComplete()

	// UploadInterrupted is called when the body stream ends prematurely. Handlers
	// must release any in-flight destination here, tolerating it already being gone.
	UploadInterrupted()

	// ChunkSize is the read chunk size this handler wants. The chain uses the smallest.
	ChunkSize() int
}

// DefaultChunkSize is the chunk size handlers use unless they say otherwise.
const DefaultChunkSize = 64 * 1024

// BaseHandler is a no-op Handler meant to be embedded by concrete handlers.
type BaseHandler struct{}

// NewFile declines involvement.
func (h *BaseHandler) NewFile(meta PartMeta) (Control, error) { return Continue, nil }

// ReceiveDataChunk passes the chunk through unchanged.
func (h *BaseHandler) ReceiveDataChunk(chunk []byte, start int64) ([]byte, Control, error) {
	return chunk, Continue, nil
}

// FileComplete produces no file.
func (h *BaseHandler) FileComplete(size int64) (UploadedFile, error) { return nil, nil }

// UploadComplete does nothing.
func (h *BaseHandler) UploadComplete() {}

// UploadInterrupted does nothing.
func (h *BaseHandler) UploadInterrupted() {}

// ChunkSize returns the default chunk size.
func (h *BaseHandler) ChunkSize() int { return DefaultChunkSize }

// HandlerFactory creates a fresh request-scoped handler.
type HandlerFactory func(settings Settings) Handler
