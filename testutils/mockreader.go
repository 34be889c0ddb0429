package testutils

import (
	"io"
)

// MockReader is an io.Reader implementation for tests. When Chunks is set it
// returns exactly one scripted chunk per Read call, which pins down how a
// stream gets sliced across reads. Otherwise it fills up the given buffer with
// copies of the Content byte slice until Length is reached.
type MockReader struct {
	Pos     int
	Length  int
	Content []byte
	Chunks  [][]byte
	next    []byte
}

// Read returns the next scripted chunk, or fills p with repeated Content.
func (m *MockReader) Read(p []byte) (n int, err error) {
	if m.Chunks != nil {
		return m.readChunk(p)
	}

	if m.Content == nil {
		m.Content = []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	}

	if m.Pos >= m.Length {
		err = io.EOF
		return
	}

	for {
		if m.Pos+len(m.Content) > m.Length {
			err = io.EOF
			return
		}

		if len(m.next) == 0 {
			m.next = m.Content
		}

		c := copy(p[n:], m.next)
		n += c
		m.Pos += c
		m.next = m.next[c:]

		if n == len(p) {
			break
		}
	}

	return
}

func (m *MockReader) readChunk(p []byte) (n int, err error) {
	if len(m.next) == 0 {
		if len(m.Chunks) == 0 {
			return 0, io.EOF
		}
		m.next = m.Chunks[0]
		m.Chunks = m.Chunks[1:]
	}

	n = copy(p, m.next)
	m.next = m.next[n:]
	m.Pos += n
	return
}
