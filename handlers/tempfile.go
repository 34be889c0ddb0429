package handlers

import (
	"formsink/upload"
)

// TempFileHandler streams part bytes to a uniquely named temporary file.
// It always claims the part if reached. The temp file path is exposed on the
// resulting UploadedFile so consumers can rename-in-place rather than copy,
// and the file is guaranteed to be removed if the upload is interrupted.
type TempFileHandler struct {
	upload.BaseHandler
	dir  string
	file *upload.TemporaryUploadedFile
}

// NewTempFileHandler creates a TempFileHandler writing into dir.
// An empty dir means the OS default temp directory.
func NewTempFileHandler(dir string) *TempFileHandler {
	return &TempFileHandler{dir: dir}
}

// NewFile opens the destination temp file and claims the part.
func (h *TempFileHandler) NewFile(meta upload.PartMeta) (upload.Control, error) {
	if h.file != nil {
		// A destination left over from a skipped or superseded part.
		h.file.Close()
		h.file = nil
	}

	file, err := upload.NewTemporaryUploadedFile(h.dir, meta)
	if err != nil {
		return upload.Continue, err
	}

	h.file = file
	return upload.ClaimPart, nil
}

// ReceiveDataChunk appends the chunk to the temp file.
func (h *TempFileHandler) ReceiveDataChunk(chunk []byte, start int64) ([]byte, upload.Control, error) {
	if h.file == nil {
		return chunk, upload.Continue, nil
	}

	if _, err := h.file.Write(chunk); err != nil {
		return nil, upload.Continue, err
	}
	return nil, upload.Continue, nil
}

// FileComplete hands the finished temp file over to the caller, which owns
// its closure from here on.
func (h *TempFileHandler) FileComplete(size int64) (upload.UploadedFile, error) {
	if h.file == nil {
		return nil, nil
	}

	file := h.file
	h.file = nil
	if err := file.MarkComplete(size); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// UploadComplete removes a destination that was never handed off.
func (h *TempFileHandler) UploadComplete() {
	h.discard()
}

// UploadInterrupted deletes the partial temp file. The file already being
// gone, moved or deleted out-of-band, is tolerated.
func (h *TempFileHandler) UploadInterrupted() {
	h.discard()
}

func (h *TempFileHandler) discard() {
	if h.file != nil {
		h.file.Close()
		h.file = nil
	}
}
