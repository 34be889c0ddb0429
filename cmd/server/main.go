package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"formsink/config"
	"formsink/grpc"
)

// Dependency injection composition root
func main() {
	logLevel := flag.String("loglevel", "error", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	profiling := flag.Bool("profiling", false, "whether to enable the :6060/debug/pprof/ endpoint")
	configFile := flag.String("config", "", "path to a YAML config file. Environment variables override values from the file.")
	standalone := flag.Bool("standalone", false, "run with the configured upload settings only, without the settings manager service")
	flag.Parse()

	loglevel, _ := zerolog.ParseLevel(*logLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(loglevel).With().Timestamp().Caller().Logger()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal().Err(err).Str("config", *configFile).Msg("Error while loading config")
	}

	g, _ := errgroup.WithContext(context.Background())

	if *profiling {
		g.Go(func() error {
			return http.ListenAndServe(":6060", nil)
		})
	}

	g.Go(func() error {
		logger.Info().Msg("Starting ingestion server")
		grpc.StartServer(logger, cfg, *standalone)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Error while running ingestion server")
	}
}
