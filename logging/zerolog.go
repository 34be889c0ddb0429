package logging

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"formsink/upload"
)

// NewZerologResultsLogger creates a results logger that creates log messages like the ones we want to send to the customer, but just outputs them to Zerolog.
func NewZerologResultsLogger(logger zerolog.Logger) (upload.ResultsLogger, error) {
	return &zerologResultsLogger{logger: logger}, nil
}

type zerologResultsLogger struct {
	logger zerolog.Logger
}

func (l *zerologResultsLogger) HeaderTooLarge(request upload.Request, limit int) {
	c := &ingestionLogEntryProperty{
		TransactionID: request.TransactionID(),
		Message:       fmt.Sprintf("Part header block exceeded the limit (%d bytes)", limit),
		Action:        "Rejected",
		Details:       ingestionLogDetailsEntry{},
	}

	l.emit(c)
}

func (l *zerologResultsLogger) UploadAborted(request upload.Request, tearDown bool) {
	action := "Aborted"
	if tearDown {
		action = "ConnectionTornDown"
	}

	c := &ingestionLogEntryProperty{
		TransactionID: request.TransactionID(),
		Message:       "Upload handler stopped the upload",
		Action:        action,
		Details:       ingestionLogDetailsEntry{},
	}

	l.emit(c)
}

func (l *zerologResultsLogger) BodyParseError(request upload.Request, err error) {
	c := &ingestionLogEntryProperty{
		TransactionID: request.TransactionID(),
		Message:       "Request body parsing error",
		Action:        "Rejected",
		Details: ingestionLogDetailsEntry{
			Message: err.Error(),
		},
	}

	l.emit(c)
}

func (l *zerologResultsLogger) emit(c *ingestionLogEntryProperty) {
	bb, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
	}

	l.logger.Info().Msgf("Customer facing log:\n%s\n", bb)
}
