package grpc

import (
	"io"

	pb "formsink/proto"
	"formsink/upload"
)

type uploadRequestPbWrapper struct {
	pb   *pb.UploadRequest
	body io.Reader
}

func (r *uploadRequestPbWrapper) TransactionID() string { return r.pb.TransactionId }
func (r *uploadRequestPbWrapper) BodyReader() io.Reader { return r.body }
func (r *uploadRequestPbWrapper) Headers() []upload.HeaderPair {
	hh := make([]upload.HeaderPair, 0, len(r.pb.Headers))
	for _, ph := range r.pb.Headers {
		hh = append(hh, &headerPairPbWrapper{pb: ph})
	}
	return hh
}

type headerPairPbWrapper struct{ pb *pb.HeaderPair }

func (h *headerPairPbWrapper) Key() string   { return h.pb.Key }
func (h *headerPairPbWrapper) Value() string { return h.pb.Value }

// chunkRecver is the part of the ingestion stream the body reader pulls from.
type chunkRecver interface {
	Recv() (*pb.UploadRequest, error)
}

// streamBodyReader serves the first message's body chunk, then keeps pulling
// chunks off the stream while the client signals more are coming.
type streamBodyReader struct {
	stream chunkRecver
	buf    []byte
	more   bool
	err    error
}

func newStreamBodyReader(first *pb.UploadRequest, stream chunkRecver) *streamBodyReader {
	return &streamBodyReader{
		stream: stream,
		buf:    first.BodyChunk,
		more:   first.MoreBodyChunks,
	}
}

func (r *streamBodyReader) Read(p []byte) (n int, err error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		if !r.more {
			r.err = io.EOF
			return 0, io.EOF
		}

		msg, rerr := r.stream.Recv()
		if rerr != nil {
			if rerr == io.EOF {
				// The client promised more chunks but closed the stream.
				rerr = io.ErrUnexpectedEOF
			}
			r.err = rerr
			return 0, rerr
		}
		r.buf = msg.BodyChunk
		r.more = msg.MoreBodyChunks
	}

	n = copy(p, r.buf)
	r.buf = r.buf[n:]
	return
}
