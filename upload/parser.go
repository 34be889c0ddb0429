package upload

import (
	"github.com/rs/zerolog"
)

// BodyParser parses multipart HTTP request bodies into the field and file maps.
type BodyParser interface {
	Parse(logger zerolog.Logger, req Request, chain *HandlerChain) (*Result, error)
	Settings() Settings
}

// BodyParserFactory creates a BodyParser for a settings snapshot.
type BodyParserFactory func(settings Settings) BodyParser

// ChainBuilder creates a fresh request-scoped handler chain for a settings snapshot.
type ChainBuilder func(settings Settings) *HandlerChain
