// internal/logging/logger.go
//
// Diagnostic logging for lens. Entries are JSON lines in .lens/logs/lens.log
// so failures can be inspected after the TUI has closed the terminal.

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the diagnostic log inside the logs directory.
const FileName = "lens.log"

// Logger wraps a zap logger bound to the project's log file.
type Logger struct {
	zap  *zap.Logger
	path string
}

// New opens (or reuses) logsDir/lens.log at the given level.
func New(logsDir, level string) (*Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	path := filepath.Join(logsDir, FileName)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil
	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return &Logger{zap: z, path: path}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Zap exposes the structured logger.
func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return zap.NewNop()
	}
	return l.zap
}

// Path returns the log file, or "" for a Nop logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close flushes buffered entries.
func (l *Logger) Close() error {
	if l == nil || l.zap == nil || l.path == "" {
		return nil
	}
	return l.zap.Sync()
}
