// Package logging builds the zap loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects level, format and an optional rotating log file.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
	Name   string `mapstructure:"name" yaml:"name"`

	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// DefaultConfig logs at info level to the console.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 7}
}

// New builds a logger writing to stderr and, when cfg.File is set, to a
// rotating JSON file.
func New(cfg Config) (*zap.Logger, error) {
	return NewWithWriter(cfg, zapcore.Lock(os.Stderr))
}

// NewWithWriter is New with an explicit console sink.
func NewWithWriter(cfg Config, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	consoleEnc, err := encoder(cfg.Format)
	if err != nil {
		return nil, err
	}
	cores := []zapcore.Core{zapcore.NewCore(consoleEnc, console, level)}

	if cfg.File != "" {
		fileEnc, _ := encoder("json")
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
		cores = append(cores, zapcore.NewCore(fileEnc, fileWriter, level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	if cfg.Name != "" {
		logger = logger.Named(cfg.Name)
	}
	return logger, nil
}

// StdLogger adapts l for APIs that take a Printf-style logger.
func StdLogger(l *zap.Logger) *log.Logger {
	return zap.NewStdLog(l)
}

// Discard returns a logger that drops everything.
func Discard() *zap.Logger {
	return zap.NewNop()
}

// WriterSyncer wraps an io.Writer for use as a console sink.
func WriterSyncer(w io.Writer) zapcore.WriteSyncer {
	return zapcore.AddSync(w)
}

func encoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
