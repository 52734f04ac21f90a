package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// LogConfig controls logger initialization.
type LogConfig struct {
	// Level controls verbosity (debug, info, warn, error).
	// Defaults to the LABUP_LOG_LEVEL environment variable, then "info".
	Level string

	// Format selects the encoder (auto, console, json). "auto" picks
	// console when stderr is a terminal and json otherwise.
	Format string

	// Output is the log destination (stderr, stdout, or a file path).
	// Defaults to "stderr".
	Output string
}

// DefaultLogConfig returns a config with sensible defaults.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LABUP_LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LABUP_LOG_FORMAT", FormatAuto),
		Output: "stderr",
	}
}

// NewLogger creates a zap logger with the provided configuration.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = getEnvOrDefault("LABUP_LOG_LEVEL", "info")
	}
	if cfg.Format == "" {
		cfg.Format = getEnvOrDefault("LABUP_LOG_FORMAT", FormatAuto)
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	writer, err := outputWriter(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("open log output: %w", err)
	}

	console := resolveFormat(cfg.Format) == FormatConsole

	var encoder zapcore.Encoder
	if console {
		encoder = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig())
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(writer),
		parseLogLevel(cfg.Level),
	)

	opts := []zap.Option{
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if !console {
		opts = append(opts,
			zap.AddCaller(),
			zap.Fields(zap.String("app", "labup")),
		)
	}

	return zap.New(core, opts...), nil
}

// MustLogger creates a logger and panics on error.
func MustLogger(cfg LogConfig) *zap.Logger {
	logger, err := NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	return logger
}

// parseLogLevel converts a string log level to zapcore.Level.
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// resolveFormat maps "auto" to a concrete encoder choice.
func resolveFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatConsole:
		return FormatConsole
	case FormatJSON:
		return FormatJSON
	default:
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			return FormatConsole
		}
		return FormatJSON
	}
}

// encoderConfig returns the shared encoder configuration.
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}

// outputWriter returns the output writer for the given path.
func outputWriter(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		return file, nil
	}
}

// getEnvOrDefault returns the environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
