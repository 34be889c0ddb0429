package upload

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Server is the top level interface to the formsink ingestion service.
type Server interface {
	IngestRequest(Request) (*Result, error)
	PutSettings(Settings) (int64, error)
	DisposeSettings(version int64) error
}

type serverImpl struct {
	logger        zerolog.Logger
	settingsMgr   SettingsMgr
	settings      Settings
	parser        BodyParser
	parserFactory BodyParserFactory
	chainBuilder  ChainBuilder
	resultsLogger ResultsLogger
	mux           sync.RWMutex
}

// NewServer creates a new top level formsink server. Restored settings
// snapshots are applied in version order; the newest wins.
func NewServer(logger zerolog.Logger, sm SettingsMgr, restored map[int64]Settings, pf BodyParserFactory, cb ChainBuilder, rl ResultsLogger) (server Server, err error) {
	s := &serverImpl{
		logger:        logger,
		settingsMgr:   sm,
		parserFactory: pf,
		chainBuilder:  cb,
		resultsLogger: rl,
	}

	s.settings = DefaultSettings()
	s.parser = pf(s.settings)

	var versions []int64
	for v := range restored {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	for _, v := range versions {
		s.applySettings(restored[v])
	}

	server = s
	return
}

// NewStandaloneServer creates a formsink server with fixed settings and no settings store.
func NewStandaloneServer(logger zerolog.Logger, settings Settings, pf BodyParserFactory, cb ChainBuilder, rl ResultsLogger) (server Server, err error) {
	s := &serverImpl{
		logger:        logger,
		parserFactory: pf,
		chainBuilder:  cb,
		resultsLogger: rl,
	}
	s.applySettings(settings)

	server = s
	return
}

func (s *serverImpl) IngestRequest(req Request) (result *Result, err error) {
	// Create a sub-logger with a transaction ID
	logger := s.logger.With().Str("txid", req.TransactionID()).Logger()

	if logger.Info() != nil {
		startTime := time.Now()
		logger.Info().Msg("Ingestion got request")
		defer func() {
			logger.Info().Dur("timeTaken", time.Since(startTime)).Bool("accepted", err == nil).Msg("Ingestion completed request")
		}()
	}

	s.mux.RLock()
	parser := s.parser
	settings := s.settings
	s.mux.RUnlock()

	chain := s.chainBuilder(settings)

	result, err = parser.Parse(logger, req, chain)
	if err != nil {
		if errors.Is(err, ErrStopUpload) {
			// Handler-issued control signal, not a true error. The partial
			// result stands; the stopped upload is simply absent from it.
			s.resultsLogger.UploadAborted(req, errors.Is(err, ErrConnectionTearDown))
			err = nil
			return
		}

		if errors.Is(err, ErrHeaderTooLarge) {
			s.resultsLogger.HeaderTooLarge(req, settings.MaxHeaderBytes)
		} else {
			s.resultsLogger.BodyParseError(req, err)
		}
		return
	}

	return
}

func (s *serverImpl) PutSettings(settings Settings) (version int64, err error) {
	if s.settingsMgr != nil {
		version, err = s.settingsMgr.PutSettings(settings)
		if err != nil {
			return
		}
	}

	s.applySettings(settings)
	return
}

func (s *serverImpl) DisposeSettings(version int64) (err error) {
	if s.settingsMgr != nil {
		err = s.settingsMgr.DisposeSettings(version)
	}
	return
}

// applySettings swaps in a new settings snapshot. This only ever happens
// between requests; in-flight parses keep the parser they started with.
func (s *serverImpl) applySettings(settings Settings) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.settings = settings
	s.parser = s.parserFactory(settings)
}
