package upload

// HandlerChain is an ordered, request-scoped collection of handlers that the
// parser drives through the per-part protocol. The first handler in the list
// that claims a part wins; chunk propagation stops at the first handler that
// consumes a chunk.
type HandlerChain struct {
	handlers []Handler
	counters []int64
}

// NewHandlerChain creates a HandlerChain over the given handlers, in order.
func NewHandlerChain(handlers ...Handler) *HandlerChain {
	return &HandlerChain{
		handlers: handlers,
		counters: make([]int64, len(handlers)),
	}
}

// Handlers returns the ordered handler list.
func (c *HandlerChain) Handlers() []Handler { return c.handlers }

// ChunkSize returns the read chunk size the parser should use: the smallest
// any handler asked for, rounded down to a multiple of 4 so base64 quanta are
// never split across chunks.
func (c *HandlerChain) ChunkSize() (size int) {
	size = DefaultChunkSize
	for _, h := range c.handlers {
		if s := h.ChunkSize(); s > 0 && s < size {
			size = s
		}
	}
	size -= size % 4
	if size < 4 {
		size = 4
	}
	return
}

// NewFile starts a new part on the chain. Handlers run in order until one
// claims the part. A SkipPart or abort verdict is returned to the caller;
// a claim is internal to the chain and surfaces as Continue.
func (c *HandlerChain) NewFile(meta PartMeta) (Control, error) {
	for i := range c.counters {
		c.counters[i] = 0
	}

	for _, h := range c.handlers {
		ctl, err := h.NewFile(meta)
		if err != nil {
			return Continue, err
		}

		switch ctl {
		case ClaimPart:
			return Continue, nil
		case SkipPart, AbortDrain, AbortTearDown:
			return ctl, nil
		}
	}

	return Continue, nil
}

// ReceiveDataChunk feeds one chunk of part body bytes through the chain.
// Each handler sees the (possibly transformed) bytes of the previous one,
// with its own running byte offset for this part.
func (c *HandlerChain) ReceiveDataChunk(chunk []byte) (Control, error) {
	for i, h := range c.handlers {
		n := int64(len(chunk))
		out, ctl, err := h.ReceiveDataChunk(chunk, c.counters[i])
		c.counters[i] += n
		if err != nil {
			return Continue, err
		}

		switch ctl {
		case SkipPart, AbortDrain, AbortTearDown:
			return ctl, nil
		}

		if out == nil {
			break
		}
		chunk = out
	}

	return Continue, nil
}

// FileComplete finishes the current part. The first handler that produces an
// UploadedFile wins; nil means no handler produced one.
func (c *HandlerChain) FileComplete(size int64) (UploadedFile, error) {
	for _, h := range c.handlers {
		file, err := h.FileComplete(size)
		if err != nil {
			return nil, err
		}
		if file != nil {
			return file, nil
		}
	}
	return nil, nil
}

// UploadComplete tells every handler the whole request has been processed.
func (c *HandlerChain) UploadComplete() {
	for _, h := range c.handlers {
		h.UploadComplete()
	}
}

// UploadInterrupted tells every handler the body stream ended prematurely.
func (c *HandlerChain) UploadInterrupted() {
	for _, h := range c.handlers {
		h.UploadInterrupted()
	}
}
