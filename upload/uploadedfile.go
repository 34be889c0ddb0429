package upload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// UploadedFile represents one completed file-bearing part.
// Size is only meaningful once FileComplete has run for the part; the parser
// does not expose the object to consumers before that.
type UploadedFile interface {
	io.Reader
	io.Closer
	Name() string
	ContentType() string
	Charset() string
	ContentTypeExtra() map[string]string
	Size() int64
}

type fileInfo struct {
	name        string
	contentType string
	charset     string
	extra       map[string]string
	size        int64
}

func (i *fileInfo) Name() string                        { return i.name }
func (i *fileInfo) ContentType() string                 { return i.contentType }
func (i *fileInfo) Charset() string                     { return i.charset }
func (i *fileInfo) ContentTypeExtra() map[string]string { return i.extra }
func (i *fileInfo) Size() int64                         { return i.size }

// MemoryUploadedFile is an UploadedFile held entirely in an in-memory buffer.
type MemoryUploadedFile struct {
	fileInfo
	reader *bytes.Reader
}

// NewMemoryUploadedFile creates a MemoryUploadedFile over the given completed part bytes.
func NewMemoryUploadedFile(meta PartMeta, data []byte) *MemoryUploadedFile {
	return &MemoryUploadedFile{
		fileInfo: fileInfo{
			name:        meta.FileName,
			contentType: meta.ContentType,
			charset:     meta.Charset,
			extra:       meta.ContentTypeExtra,
			size:        int64(len(data)),
		},
		reader: bytes.NewReader(data),
	}
}

// Read reads from the in-memory buffer.
func (f *MemoryUploadedFile) Read(p []byte) (int, error) { return f.reader.Read(p) }

// Close is a no-op. A memory-backed file leaves no disk footprint.
func (f *MemoryUploadedFile) Close() error { return nil }

// TemporaryUploadedFile is an UploadedFile streamed to a uniquely named temp file.
// The file is unlinked when the wrapper is closed, or by a finalizer if the
// wrapper is garbage-collected without Close having been called.
type TemporaryUploadedFile struct {
	fileInfo
	file *os.File
	path string
}

// NewTemporaryUploadedFile creates the destination temp file for a part in dir.
// An empty dir means the OS default temp directory.
func NewTemporaryUploadedFile(dir string, meta PartMeta) (f *TemporaryUploadedFile, err error) {
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, "upload"+uuid.New().String()+".tmp")
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return
	}

	f = &TemporaryUploadedFile{
		fileInfo: fileInfo{
			name:        meta.FileName,
			contentType: meta.ContentType,
			charset:     meta.Charset,
			extra:       meta.ContentTypeExtra,
		},
		file: file,
		path: path,
	}
	runtime.SetFinalizer(f, func(f *TemporaryUploadedFile) { f.Close() })
	return
}

// Write appends a chunk to the temp file.
func (f *TemporaryUploadedFile) Write(p []byte) (int, error) { return f.file.Write(p) }

// MarkComplete records the final size and rewinds the file for reading.
func (f *TemporaryUploadedFile) MarkComplete(size int64) (err error) {
	f.size = size
	_, err = f.file.Seek(0, io.SeekStart)
	return
}

// Read reads back the temp file contents.
func (f *TemporaryUploadedFile) Read(p []byte) (int, error) { return f.file.Read(p) }

// TemporaryFilePath returns the OS path of the temp file, so callers can
// rename-in-place rather than copy.
func (f *TemporaryUploadedFile) TemporaryFilePath() string { return f.path }

// Release closes the temp file but leaves it on disk, handing ownership of
// the path to the caller. The usual pattern is to rename it into place.
func (f *TemporaryUploadedFile) Release() string {
	runtime.SetFinalizer(f, nil)
	f.file.Close()
	return f.path
}

// Close closes and unlinks the temp file. The file having already been moved
// or deleted out-of-band is not an error.
func (f *TemporaryUploadedFile) Close() error {
	runtime.SetFinalizer(f, nil)
	f.file.Close()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
