package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  LogConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: LogConfig{
				Level:  "info",
				Format: FormatJSON,
				Output: "stderr",
			},
			wantErr: false,
		},
		{
			name:    "default config",
			config:  DefaultLogConfig(),
			wantErr: false,
		},
		{
			name: "invalid log level defaults to info",
			config: LogConfig{
				Level:  "invalid",
				Format: FormatConsole,
				Output: "stdout",
			},
			wantErr: false,
		},
		{
			name:    "zero value fills defaults",
			config:  LogConfig{},
			wantErr: false,
		},
		{
			name: "unwritable file output",
			config: LogConfig{
				Output: "/nonexistent-dir-xyz/labup.log",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if logger == nil && !tt.wantErr {
				t.Error("NewLogger() returned nil logger")
			}
			if logger != nil {
				_ = logger.Sync()
			}
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labup.log")

	logger, err := NewLogger(LogConfig{
		Level:  "debug",
		Format: FormatJSON,
		Output: path,
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("lab ready", zap.String("lab", "srl"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "lab ready" {
		t.Errorf("msg = %v, want %q", entry["msg"], "lab ready")
	}
	if entry["app"] != "labup" {
		t.Errorf("app = %v, want %q", entry["app"], "labup")
	}
	if entry["lab"] != "srl" {
		t.Errorf("lab = %v, want %q", entry["lab"], "srl")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{" info ", zapcore.InfoLevel},
		{"invalid", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	if got := resolveFormat("console"); got != FormatConsole {
		t.Errorf("resolveFormat(console) = %q", got)
	}
	if got := resolveFormat("JSON"); got != FormatJSON {
		t.Errorf("resolveFormat(JSON) = %q", got)
	}
	// "auto" resolves by TTY detection; either outcome is valid but it
	// must settle on a concrete encoder.
	got := resolveFormat(FormatAuto)
	if got != FormatConsole && got != FormatJSON {
		t.Errorf("resolveFormat(auto) = %q, want console or json", got)
	}
}

func TestDefaultLogConfig_EnvOverride(t *testing.T) {
	t.Setenv("LABUP_LOG_LEVEL", "debug")
	t.Setenv("LABUP_LOG_FORMAT", "json")

	cfg := DefaultLogConfig()
	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Output = %q, want stderr", cfg.Output)
	}
}
