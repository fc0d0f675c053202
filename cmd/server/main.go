package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/quantalogic/lorem-ipsum-generator/internal/config"
	"github.com/quantalogic/lorem-ipsum-generator/internal/logging"
	"github.com/quantalogic/lorem-ipsum-generator/internal/watcher"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/render"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/server"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "lorem-server",
		Usage: "Serve lorem ipsum placeholder text over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to lorem.toml (defaults to the search paths)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the HTTP server on (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (overrides config)",
			},
		},
		Action: serve,
	}

	return app.Run(context.Background(), os.Args)
}

func serve(ctx context.Context, c *cli.Command) error {
	cfg, usedPath, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("port") {
		cfg.Server.Port = int(c.Int("port"))
	}
	if c.IsSet("log-level") {
		cfg.Debug.LogLevel = c.String("log-level")
	}

	logger, err := logging.New(cfg.Debug.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if usedPath == "" {
		logger.Info("No config file found, using defaults")
	} else {
		logger.Info("Loaded config", zap.String("path", usedPath))
	}

	opts := server.Options{
		Logger:        logger,
		Seed:          cfg.Generator.SeedPtr(),
		DefaultFormat: render.Format(cfg.Generator.DefaultFormat),
	}
	if path := cfg.Generator.VocabularyFile; path != "" {
		wb, err := config.LoadVocabulary(path)
		if err != nil {
			return err
		}
		opts.WordBank = wb
		logger.Info("Loaded vocabulary", zap.String("path", path), zap.Int("words", wb.Len()))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(opts)

	if cfg.Generator.WatchVocabulary && cfg.Generator.VocabularyFile != "" {
		w, err := watcher.NewVocabularyWatcher(cfg.Generator.VocabularyFile, logger)
		if err != nil {
			return err
		}
		defer w.Stop()

		updates, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		go func() {
			for wb := range updates {
				srv.SetWordBank(wb)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting lorem ipsum server", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
