package grpc

import (
	"io"
	"net"

	"github.com/rs/zerolog"
	"golang.org/x/net/context"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"

	"formsink/bodyparsing"
	"formsink/config"
	"formsink/hyperscan"
	"formsink/logging"
	pb "formsink/proto"
	"formsink/upload"
)

// StartServer is the dependency injection composition root for running formsink through gRPC
func StartServer(logger zerolog.Logger, cfg config.Main, standalone bool) {
	// Initialize common dependencies
	rl, err := logging.NewFileResultsLogger(&logging.LogFileSystemImpl{}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Error while creating file results logger, falling back to Zerolog results logger")
		rl, err = logging.NewZerologResultsLogger(logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while creating results logger")
		}
	}

	var mref upload.MultiRegexEngineFactory
	if cfg.ScanEngine == "go" {
		mref = hyperscan.NewGoMultiRegexEngineFactory()
	} else {
		mref = hyperscan.NewMultiRegexEngineFactory(hyperscan.NewDbCache(hyperscan.NewCacheFileSystem()))
	}
	registry := config.NewRegistry(mref)
	cb := registry.ChainBuilder()
	pf := bodyparsing.NewMultipartParser

	// Initialize an ingestion server, either with the settings manager, or standalone with fixed settings
	var uploadServer upload.Server
	if standalone {
		logger.Info().Msg("Creating a standalone ingestion server with fixed settings")

		if err = registry.Validate(cfg.Upload); err != nil {
			logger.Fatal().Err(err).Msg("Error in the configured upload handlers")
		}

		uploadServer, err = upload.NewStandaloneServer(logger, cfg.Upload, pf, cb, rl)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while creating standalone ingestion server")
		}
	} else {
		sm, restored, err := upload.NewSettingsMgr(&upload.SettingsFileSystemImpl{}, cfg.SettingsDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while creating settings manager")
		}

		uploadServer, err = upload.NewServer(logger, sm, restored, pf, cb, rl)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while creating ingestion server")
		}
	}

	// Start the gRPC server using the given ingestion server
	grpcServer := newServer(logger, registry, uploadServer)
	logger.Info().Str("addr", cfg.Addr).Msg("Starting gRPC ingestion server")
	if err := grpcServer.Serve("tcp", cfg.Addr, cfg.MaxConcurrentConns); err != nil {
		logger.Fatal().Err(err).Msg("Error while running gRPC ingestion server")
	}
}

// server is the gRPC transport in front of an upload.Server.
type server interface {
	Serve(network string, address string, maxConcurrentConns int) error
}

type serverImpl struct {
	logger       zerolog.Logger
	registry     *config.Registry
	uploadServer upload.Server
}

func newServer(logger zerolog.Logger, registry *config.Registry, uploadServer upload.Server) server {
	return &serverImpl{logger: logger, registry: registry, uploadServer: uploadServer}
}

func (s *serverImpl) Serve(network string, address string, maxConcurrentConns int) error {
	lis, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	if maxConcurrentConns > 0 {
		lis = netutil.LimitListener(lis, maxConcurrentConns)
	}

	g := grpc.NewServer()
	pb.RegisterUploadIngestionServer(g, s)
	return g.Serve(lis)
}

// IngestRequest receives one multipart request as a stream of chunks, runs it
// through the upload pipeline and replies with the ingestion summary.
func (s *serverImpl) IngestRequest(stream pb.UploadIngestion_IngestRequestServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}

	req := &uploadRequestPbWrapper{
		pb:   first,
		body: newStreamBodyReader(first, stream),
	}

	result, err := s.uploadServer.IngestRequest(req)
	if err != nil {
		return stream.SendAndClose(&pb.IngestSummary{Rejection: err.Error()})
	}

	summary, err := summaryFromResult(result)
	if err != nil {
		s.logger.Error().Err(err).Str("txid", req.TransactionID()).Msg("Error while assembling ingestion summary")
		return err
	}

	return stream.SendAndClose(summary)
}

func (s *serverImpl) PutSettings(ctx context.Context, p *pb.UploadSettings) (*pb.PutSettingsResponse, error) {
	settings := settingsFromPb(p)
	if err := s.registry.Validate(settings); err != nil {
		return nil, err
	}

	version, err := s.uploadServer.PutSettings(settings)
	if err != nil {
		return nil, err
	}

	return &pb.PutSettingsResponse{Version: version}, nil
}

func (s *serverImpl) DisposeSettings(ctx context.Context, r *pb.DisposeSettingsRequest) (*pb.DisposeSettingsResponse, error) {
	if err := s.uploadServer.DisposeSettings(r.Version); err != nil {
		return nil, err
	}
	return &pb.DisposeSettingsResponse{}, nil
}

// summaryFromResult converts a pipeline result to the wire summary. Memory
// backed files are inlined; temp backed files hand over their on-disk path,
// which the consumer then owns.
func summaryFromResult(result *upload.Result) (*pb.IngestSummary, error) {
	summary := &pb.IngestSummary{Accepted: true}

	for _, name := range result.Values.Keys() {
		for _, v := range result.Values.GetAll(name) {
			summary.Fields = append(summary.Fields, &pb.FieldEntry{Name: name, Value: v})
		}
	}

	for _, name := range result.Files.Keys() {
		for _, f := range result.Files.GetAll(name) {
			entry := &pb.FileEntry{
				FieldName:   name,
				FileName:    f.Name(),
				ContentType: f.ContentType(),
				Charset:     f.Charset(),
				Size:        f.Size(),
			}

			if tf, ok := f.(*upload.TemporaryUploadedFile); ok {
				entry.TempFilePath = tf.Release()
			} else {
				bb, err := io.ReadAll(f)
				if err != nil {
					result.Files.Close()
					return nil, err
				}
				entry.Content = bb
				f.Close()
			}

			summary.Files = append(summary.Files, entry)
		}
	}

	return summary, nil
}
