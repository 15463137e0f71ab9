package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/logging"
	"github.com/tomz197/collide/internal/sandbox"
	"github.com/tomz197/collide/internal/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sandbox error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the canvas, so logs only go to the file, if any.
	cfg := logging.DefaultConfig()
	cfg.Level = config.GetEnv(config.EnvLogLevel, cfg.Level)
	cfg.File = config.GetEnv(config.EnvLogFile, "")
	cfg.Name = "sandbox"
	logger, err := logging.NewWithWriter(cfg, logging.WriterSyncer(io.Discard))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sc := scene.Default()
	if path := config.GetEnv(config.EnvScene, ""); path != "" {
		if sc, err = scene.LoadFile(path); err != nil {
			return err
		}
		logger.Info("scene loaded", zap.String("path", path), zap.Int("shapes", len(sc.Shapes)))
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return sandbox.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, sandbox.Options{
		Scene:  sc,
		Logger: logger,
	})
}
