package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/draw"
	applog "github.com/tomz197/collide/internal/logging"
	"github.com/tomz197/collide/internal/sandbox"
	"github.com/tomz197/collide/internal/scene"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultIdleSeconds = 300
)

func main() {
	cfg := applog.DefaultConfig()
	cfg.Level = config.GetEnv(config.EnvLogLevel, cfg.Level)
	cfg.File = config.GetEnv(config.EnvLogFile, "")
	cfg.Name = "ssh"
	logger, err := applog.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := serve(logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func serve(logger *zap.Logger) error {
	host := config.GetEnv(config.EnvSSHHost, defaultHost)
	port := config.GetEnv(config.EnvSSHPort, defaultPort)
	hostKeyPath := config.GetEnv(config.EnvSSHHostKey, defaultHostKeyPath)
	idle := time.Duration(config.GetEnvInt(config.EnvSSHIdle, defaultIdleSeconds)) * time.Second

	sc := scene.Default()
	if path := config.GetEnv(config.EnvScene, ""); path != "" {
		var err error
		if sc, err = scene.LoadFile(path); err != nil {
			return err
		}
	}
	logger.Info("ssh config",
		zap.String("host", host),
		zap.String("port", port),
		zap.String("host_key", hostKeyPath),
		zap.Duration("idle_timeout", idle),
		zap.Int("shapes", len(sc.Shapes)))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			sandboxMiddleware(sc, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(applog.StdLogger(logger)),
		),
		// Keystrokes are tiny; do not let Nagle batch them.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if idle > 0 {
		opts = append(opts, wish.WithIdleTimeout(idle))
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	logger.Info("starting ssh server", zap.String("addr", net.JoinHostPort(host, port)))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return err
	}
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// sandboxMiddleware gives every session its own sandbox over the shared,
// read-only scene.
func sandboxMiddleware(sc *scene.Scene, logger *zap.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log := logger.With(
				zap.String("session", uuid.NewString()),
				zap.String("user", sess.User()))
			log.Info("session started",
				zap.String("term", pty.Term),
				zap.Int("width", pty.Window.Width),
				zap.Int("height", pty.Window.Height))

			sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizes.update(win.Width, win.Height)
				}
			}()

			err := sandbox.Run(sess.Context(), bufio.NewReader(sess), sess, sandbox.Options{
				TermSizeFunc: sizes.getSize,
				Scene:        sc,
				Logger:       log,
			})
			if err != nil {
				log.Error("sandbox failed", zap.Error(err))
			}

			log.Info("session ended")
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
