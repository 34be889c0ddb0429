package upload

// ResultsLogger is where the pipeline writes high level customer facing results.
type ResultsLogger interface {
	HeaderTooLarge(request Request, limit int)
	UploadAborted(request Request, tearDown bool)
	BodyParseError(request Request, err error)
}
