package handlers

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"formsink/upload"
)

func TestTempFileHandlerRoundTrip(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	h := NewTempFileHandler(dir)

	// Act
	ctl, err := h.NewFile(upload.PartMeta{FieldName: "doc", FileName: "a.bin"})
	out, _, cerr := h.ReceiveDataChunk([]byte("streamed bytes"), 0)
	f, ferr := h.FileComplete(14)

	// Assert
	if err != nil || cerr != nil || ferr != nil {
		t.Fatalf("Got unexpected errors: %v, %v, %v", err, cerr, ferr)
	}

	if ctl != upload.ClaimPart {
		t.Fatalf("Got unexpected control: %v", ctl)
	}

	if out != nil {
		t.Fatalf("Expected the chunk to be consumed")
	}

	bb, _ := io.ReadAll(f)
	if string(bb) != "streamed bytes" {
		t.Fatalf("Got unexpected content: %q", bb)
	}

	tf := f.(*upload.TemporaryUploadedFile)
	if filepath.Dir(tf.TemporaryFilePath()) != dir {
		t.Fatalf("Got unexpected temp file location: %q", tf.TemporaryFilePath())
	}

	f.Close()
}

func TestTempFileHandlerInterruptedCleansUp(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	h := NewTempFileHandler(dir)
	h.NewFile(upload.PartMeta{FieldName: "doc", FileName: "a.bin"})
	h.ReceiveDataChunk([]byte("partial"), 0)

	// Act
	h.UploadInterrupted()

	// Assert
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if len(entries) != 0 {
		t.Fatalf("Expected the partial temp file to be removed, found: %v", entries)
	}
}

func TestTempFileHandlerInterruptedToleratesMissingFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	h := NewTempFileHandler(dir)
	h.NewFile(upload.PartMeta{FieldName: "doc"})

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		os.Remove(filepath.Join(dir, e.Name()))
	}

	// Act
	h.UploadInterrupted()

	// Assert
	// No panic and no error is the expectation here.
}

func TestTempFileHandlerSupersededDestinationRemoved(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	h := NewTempFileHandler(dir)

	// Act
	// The first part never completes; a second part starts.
	h.NewFile(upload.PartMeta{FieldName: "one"})
	h.ReceiveDataChunk([]byte("abandoned"), 0)
	h.NewFile(upload.PartMeta{FieldName: "two"})
	h.ReceiveDataChunk([]byte("kept"), 0)
	f, err := h.FileComplete(4)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("Expected exactly one temp file, found: %v", len(entries))
	}

	bb, _ := io.ReadAll(f)
	if string(bb) != "kept" {
		t.Fatalf("Got unexpected content: %q", bb)
	}

	f.Close()
}
