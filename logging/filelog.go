package logging

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"formsink/upload"
)

// Path is the formsink log path
const Path = "/var/log/formsink/"

// FileName is the formsink log file name
const FileName = "ingestion_json.log"

type filelogResultsLogger struct {
	fileSystem   LogFileSystem
	file         LogFile
	logger       zerolog.Logger
	writelogline chan []byte
	writeDone    chan bool
	resourceID   string
	instanceID   string
}

// NewFileResultsLogger creates a results logger that writes log messages to file.
func NewFileResultsLogger(fileSystem LogFileSystem, logger zerolog.Logger) (upload.ResultsLogger, error) {
	r := &filelogResultsLogger{fileSystem: fileSystem, logger: logger}

	err := fileSystem.MkDir(Path)
	if err != nil {
		logger.Error().Err(err).Str("path", Path).Msg("Failed to create the directory while initializing")
		return nil, err
	}

	r.file, err = fileSystem.Open(Path + FileName)
	if err != nil {
		logger.Error().Err(err).Str("file", Path+FileName).Msg("Failed to open the file at initiation")
		return nil, err
	}

	r.writelogline = make(chan []byte)
	r.writeDone = make(chan bool)
	go func() {
		for v := range r.writelogline {
			r.file.Append(v)
			r.file.Append([]byte("\n"))
			r.writeDone <- true
		}
	}()

	return r, nil
}

func (l *filelogResultsLogger) HeaderTooLarge(request upload.Request, limit int) {
	l.emit(request, fmt.Sprintf("Part header block exceeded the limit (%d bytes)", limit), "Rejected", "")
}

func (l *filelogResultsLogger) UploadAborted(request upload.Request, tearDown bool) {
	action := "Aborted"
	if tearDown {
		action = "ConnectionTornDown"
	}
	l.emit(request, "Upload handler stopped the upload", action, "")
}

func (l *filelogResultsLogger) BodyParseError(request upload.Request, err error) {
	l.emit(request, "Request body parsing error", "Rejected", err.Error())
}

func (l *filelogResultsLogger) emit(request upload.Request, msg string, action string, details string) {
	c := ingestionLogEntryProperty{
		InstanceID:    l.instanceID,
		TransactionID: request.TransactionID(),
		Message:       msg,
		Action:        action,
		Details: ingestionLogDetailsEntry{
			Message: details,
		},
	}

	lg := &ingestionLogEntry{
		ResourceID:    l.resourceID,
		OperationName: "FormsinkIngestion",
		Category:      "FormsinkIngestionLog",
		Properties:    c,
	}

	bb, err := json.Marshal(lg)
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
	}

	l.writelogline <- bb
	<-l.writeDone
}
