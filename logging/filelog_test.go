package logging

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFileResultsLoggerHeaderTooLarge(t *testing.T) {
	request := &mockIngestRequest{transactionID: "abc"}

	zeroLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(1).With().Timestamp().Caller().Logger()
	fileSystem := &mockFileSystem{}
	fileSystem.fmap = make(map[string]LogFile)
	logger, _ := NewFileResultsLogger(fileSystem, zeroLogger)

	logger.HeaderTooLarge(request, 4096)
	log := fileSystem.Get(Path + FileName)

	expected := `{"resourceId":"","operationName":"FormsinkIngestion","category":"FormsinkIngestionLog","properties":{"instanceId":"","transactionId":"abc","message":"Part header block exceeded the limit (4096 bytes)","action":"Rejected","details":{"message":""}}}`
	if log != expected+"\n" {
		t.Fatalf("HeaderTooLarge got wrong log entry %v, expected %v", log, expected)
	}
}

func TestFileResultsLoggerUploadAbortedTearDown(t *testing.T) {
	request := &mockIngestRequest{transactionID: "abc"}

	zeroLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(1).With().Timestamp().Caller().Logger()
	fileSystem := &mockFileSystem{}
	fileSystem.fmap = make(map[string]LogFile)
	logger, _ := NewFileResultsLogger(fileSystem, zeroLogger)

	logger.UploadAborted(request, true)
	log := fileSystem.Get(Path + FileName)

	expected := `{"resourceId":"","operationName":"FormsinkIngestion","category":"FormsinkIngestionLog","properties":{"instanceId":"","transactionId":"abc","message":"Upload handler stopped the upload","action":"ConnectionTornDown","details":{"message":""}}}`
	if log != expected+"\n" {
		t.Fatalf("UploadAborted got wrong log entry %v, expected %v", log, expected)
	}
}

func TestFileResultsLoggerBodyParseError(t *testing.T) {
	request := &mockIngestRequest{transactionID: "abc"}

	zeroLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(1).With().Timestamp().Caller().Logger()
	fileSystem := &mockFileSystem{}
	fileSystem.fmap = make(map[string]LogFile)
	logger, _ := NewFileResultsLogger(fileSystem, zeroLogger)

	logger.BodyParseError(request, io.ErrUnexpectedEOF)
	log := fileSystem.Get(Path + FileName)

	expected := `{"resourceId":"","operationName":"FormsinkIngestion","category":"FormsinkIngestionLog","properties":{"instanceId":"","transactionId":"abc","message":"Request body parsing error","action":"Rejected","details":{"message":"unexpected EOF"}}}`
	if log != expected+"\n" {
		t.Fatalf("BodyParseError got wrong log entry %v, expected %v", log, expected)
	}
}

type mockFile struct {
	Content string
}

func (fs *mockFile) Append(content []byte) (err error) {
	fs.Content = fs.Content + string(content)
	return nil
}

type mockFileSystem struct {
	fmap map[string]LogFile
}

func (fs *mockFileSystem) MkDir(name string) error {
	return nil
}

func (fs *mockFileSystem) Open(name string) (f LogFile, err error) {
	f = &mockFile{}
	fs.fmap[name] = f
	return f, nil
}

func (fs *mockFileSystem) Get(name string) string {
	f, ok := fs.fmap[name]
	if !ok {
		return ""
	}
	return f.(*mockFile).Content
}
