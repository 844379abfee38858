// picoweb serves the web client's game view over HTTP and websockets, or
// renders PGN files in batch with -export.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/config"
	"github.com/jromang/picochess/internal/logging"
	"github.com/jromang/picochess/internal/server"
	"github.com/jromang/picochess/internal/session"
	"github.com/jromang/picochess/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("picoweb version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picoweb: %v\n", err)
		os.Exit(1)
	}
	cfg, err = applyFlags(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picoweb: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picoweb: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *exportFile != "" {
		if err := batch(ctx, cfg, log); err != nil {
			log.Error("batch export failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func batch(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	f, err := worker.ParseFormat(*format)
	if err != nil {
		return err
	}
	classifier, err := loadClassifier(*ecoFile, log)
	if err != nil {
		return err
	}
	r := worker.Renderer{
		Format:     f,
		Columns:    cfg.Output.Columns,
		Options:    cfg.Output.ExportOptions(),
		Logger:     log,
		Classifier: classifier,
	}
	return runBatch(ctx, os.Stdout, *exportFile, r, *workers, log)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	store, err := session.NewStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(cfg, store, log)
	if *sessionID != "" {
		if err := srv.Resume(ctx, *sessionID); err != nil {
			log.Warn("starting a fresh session", zap.String("session", *sessionID), zap.Error(err))
		}
	}
	return srv.Run(ctx)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: picoweb [options]\n")
	fmt.Fprintf(os.Stderr, "       picoweb -export games.pgn [-format pgn|html|json] [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves the picochess game view, or renders PGN files in batch.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed %s_ override the config file,\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "e.g. %s_SERVER_ADDR=:9000.\n", config.EnvPrefix)
}
