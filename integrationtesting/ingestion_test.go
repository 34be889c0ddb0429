package integrationtesting

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"formsink/bodyparsing"
	"formsink/config"
	"formsink/upload"
)

// End-to-end tests over the real parser, handler registry and ingestion
// server, with only the transport layer left out.

func newIngestionServer(t *testing.T, settings upload.Settings, registry *config.Registry, rl upload.ResultsLogger) upload.Server {
	t.Helper()

	if registry == nil {
		registry = config.NewRegistry(nil)
	}
	if rl == nil {
		rl = &recordingResultsLogger{}
	}

	if err := registry.Validate(settings); err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	s, err := upload.NewStandaloneServer(zerolog.Nop(), settings, bodyparsing.NewMultipartParser, registry.ChainBuilder(), rl)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	return s
}

func multipartBody(boundary string, parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString(p)
	}
	b.WriteString("--" + boundary + "--\r\n")
	return b.String()
}

func fieldPart(name, value string) string {
	return fmt.Sprintf("Content-Disposition: form-data; name=%q\r\n\r\n%s\r\n", name, value)
}

func filePart(name, filename, content string) string {
	return fmt.Sprintf("Content-Disposition: form-data; name=%q; filename=%q\r\nContent-Type: application/octet-stream\r\n\r\n%s\r\n", name, filename, content)
}

func newIngestionRequest(txid string, body string) *mockIngestionRequest {
	return &mockIngestionRequest{
		txid: txid,
		headers: []upload.HeaderPair{
			&mockHeader{k: "Content-Type", v: "multipart/form-data; boundary=bndry"},
			&mockHeader{k: "Content-Length", v: fmt.Sprint(len(body))},
		},
		body: strings.NewReader(body),
	}
}

func TestIngestFieldsAndFiles(t *testing.T) {
	// Arrange
	settings := upload.Settings{
		MemoryThreshold: 1 << 20,
		MaxHeaderBytes:  1024,
		Handlers:        []string{"memory", "tempfile"},
	}
	s := newIngestionServer(t, settings, nil, nil)

	body := multipartBody("bndry",
		fieldPart("title", "quarterly report"),
		filePart("doc", "report.txt", "the report content"),
		fieldPart("tags", "q3"),
	)
	req := newIngestionRequest("tx-e2e-1", body)

	// Act
	result, err := s.IngestRequest(req)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if result.Values.Get("title") != "quarterly report" || result.Values.Get("tags") != "q3" {
		t.Fatalf("Got unexpected field values: %v", result.Values)
	}

	f := result.Files.Get("doc")
	if f == nil {
		t.Fatalf("Expected an uploaded file")
	}

	if f.Name() != "report.txt" || f.ContentType() != "application/octet-stream" {
		t.Fatalf("Got unexpected file metadata: %q, %q", f.Name(), f.ContentType())
	}

	bb, _ := io.ReadAll(f)
	if string(bb) != "the report content" {
		t.Fatalf("Got unexpected file content: %q", bb)
	}

	if _, ok := f.(*upload.MemoryUploadedFile); !ok {
		t.Fatalf("Expected the small request to stay in memory, got: %T", f)
	}

	result.Files.Close()
}

func TestIngestLargeRequestSpoolsToDisk(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	settings := upload.Settings{
		MemoryThreshold: 10,
		TempDir:         dir,
		MaxHeaderBytes:  1024,
		Handlers:        []string{"memory", "tempfile"},
	}
	s := newIngestionServer(t, settings, nil, nil)

	body := multipartBody("bndry", filePart("doc", "big.bin", strings.Repeat("x", 5000)))
	req := newIngestionRequest("tx-e2e-2", body)

	// Act
	result, err := s.IngestRequest(req)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	f := result.Files.Get("doc")
	tf, ok := f.(*upload.TemporaryUploadedFile)
	if !ok {
		t.Fatalf("Expected the large request to spool to disk, got: %T", f)
	}

	if f.Size() != 5000 {
		t.Fatalf("Got unexpected file size: %v", f.Size())
	}

	path := tf.TemporaryFilePath()
	if _, err = os.Stat(path); err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	result.Files.Close()

	// Closing the result removes the spooled file.
	if _, err = os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected the temp file to be removed, got: %v", err)
	}
}

func TestIngestQuotaTearsDownConnection(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	settings := upload.Settings{
		MemoryThreshold: 10,
		TempDir:         dir,
		MaxHeaderBytes:  1024,
		Handlers:        []string{"quota", "memory", "tempfile"},
		Quota:           100,
	}
	rl := &recordingResultsLogger{}
	s := newIngestionServer(t, settings, nil, rl)

	body := multipartBody("bndry", filePart("doc", "big.bin", strings.Repeat("x", 5000)))
	req := newIngestionRequest("tx-e2e-3", body)

	// Act
	result, err := s.IngestRequest(req)

	// Assert
	// The abort is a handler verdict, not a transport error.
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if result.Files.Len() != 0 {
		t.Fatalf("Expected no files past the quota, got: %v", result.Files.Keys())
	}

	if rl.uploadAborted != 1 || !rl.lastTearDown {
		t.Fatalf("Got unexpected results log: %v, %v", rl.uploadAborted, rl.lastTearDown)
	}

	// The interrupted spool file is cleaned up.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("Expected no leftover temp files, found: %v", entries)
	}
}

func TestIngestQuotaUnderLimitPasses(t *testing.T) {
	// Arrange
	settings := upload.Settings{
		MemoryThreshold: 1 << 20,
		MaxHeaderBytes:  1024,
		Handlers:        []string{"quota", "memory", "tempfile"},
		Quota:           1 << 20,
	}
	s := newIngestionServer(t, settings, nil, nil)

	body := multipartBody("bndry", filePart("doc", "ok.bin", strings.Repeat("x", 500)))
	req := newIngestionRequest("tx-e2e-4", body)

	// Act
	result, err := s.IngestRequest(req)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if result.Files.Get("doc") == nil {
		t.Fatalf("Expected the file to be ingested")
	}

	result.Files.Close()
}

func TestIngestContentScanRejects(t *testing.T) {
	// Arrange
	registry := config.NewRegistry(&regexpEngineFactory{})
	settings := upload.Settings{
		MemoryThreshold: 1 << 20,
		MaxHeaderBytes:  1024,
		Handlers:        []string{"contentscan", "memory", "tempfile"},
		ScanSignatures:  []string{"EICAR-STANDARD-ANTIVIRUS-TEST"},
	}
	rl := &recordingResultsLogger{}
	s := newIngestionServer(t, settings, registry, rl)

	body := multipartBody("bndry", filePart("doc", "bad.txt", "prefix EICAR-STANDARD-ANTIVIRUS-TEST suffix"))
	req := newIngestionRequest("tx-e2e-5", body)

	// Act
	result, err := s.IngestRequest(req)

	// Assert
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	if result.Files.Len() != 0 {
		t.Fatalf("Expected the flagged file to be absent, got: %v", result.Files.Keys())
	}

	if rl.uploadAborted != 1 || !rl.lastTearDown {
		t.Fatalf("Got unexpected results log: %v, %v", rl.uploadAborted, rl.lastTearDown)
	}
}

func TestIngestSettingsSwap(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	settings := upload.Settings{
		MemoryThreshold: 1 << 20,
		TempDir:         dir,
		MaxHeaderBytes:  1024,
		Handlers:        []string{"memory", "tempfile"},
	}
	s := newIngestionServer(t, settings, nil, nil)

	body := multipartBody("bndry", filePart("doc", "a.bin", strings.Repeat("x", 500)))

	// Act
	r1, err1 := s.IngestRequest(newIngestionRequest("tx-a", body))
	settings.MemoryThreshold = 10
	_, err := s.PutSettings(settings)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	r2, err2 := s.IngestRequest(newIngestionRequest("tx-b", body))

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("Got unexpected errors: %v, %v", err1, err2)
	}

	if _, ok := r1.Files.Get("doc").(*upload.MemoryUploadedFile); !ok {
		t.Fatalf("Expected the first ingest to stay in memory, got: %T", r1.Files.Get("doc"))
	}

	if _, ok := r2.Files.Get("doc").(*upload.TemporaryUploadedFile); !ok {
		t.Fatalf("Expected the second ingest to spool to disk, got: %T", r2.Files.Get("doc"))
	}

	r1.Files.Close()
	r2.Files.Close()
}

func TestIngestHeaderTooLargeRejected(t *testing.T) {
	// Arrange
	settings := upload.Settings{
		MemoryThreshold: 1 << 20,
		MaxHeaderBytes:  40,
		Handlers:        []string{"memory", "tempfile"},
	}
	rl := &recordingResultsLogger{}
	s := newIngestionServer(t, settings, nil, rl)

	body := multipartBody("bndry", filePart("doc", "a-very-long-client-chosen-filename.txt", "content"))
	req := newIngestionRequest("tx-e2e-6", body)

	// Act
	_, err := s.IngestRequest(req)

	// Assert
	if err == nil {
		t.Fatalf("Expected an error for the oversized part headers")
	}

	if rl.headerTooLarge != 1 {
		t.Fatalf("Got unexpected results log: %v", rl.headerTooLarge)
	}
}
