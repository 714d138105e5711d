// Package logger builds the zerolog loggers used across the server.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"avaro.dev/internal/config"
)

// Manager hands out per-component loggers that share one set of writers
type Manager struct {
	config     config.LogConfig
	global     zerolog.Logger
	components map[string]zerolog.Logger
	closers    []io.Closer
	mu         sync.RWMutex
}

// NewManager creates a manager writing to stderr and, when cfg.File is set,
// to a rotated log file.
func NewManager(cfg config.LogConfig) (*Manager, error) {
	return newManager(cfg, os.Stderr)
}

func newManager(cfg config.LogConfig, console io.Writer) (*Manager, error) {
	m := &Manager{
		config:     cfg,
		components: make(map[string]zerolog.Logger),
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	writers := []io.Writer{consoleWriter(cfg.Format, console)}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.Backups,
		}
		m.closers = append(m.closers, rotated)
		writers = append(writers, rotated)
	}

	m.global = zerolog.New(io.MultiWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().Logger()
	return m, nil
}

func consoleWriter(format string, out io.Writer) io.Writer {
	if format != "console" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05.000",
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
	}
}

// Get returns the logger for a component, honoring per-component levels.
func (m *Manager) Get(component string) zerolog.Logger {
	m.mu.RLock()
	if l, ok := m.components[component]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.components[component]; ok {
		return l
	}

	level := parseLevel(m.config.Level)
	if lvl, ok := m.config.Levels[component]; ok {
		level = parseLevel(lvl)
	}
	l := m.global.With().Str("component", component).Logger().Level(level)
	m.components[component] = l
	return l
}

// Close flushes and closes the log file, if any.
func (m *Manager) Close() error {
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	globalMu      sync.RWMutex
	globalManager *Manager
)

// Initialize installs the process-wide manager. Calling it again replaces
// the previous one.
func Initialize(cfg config.LogConfig) error {
	m, err := NewManager(cfg)
	if err != nil {
		return err
	}
	globalMu.Lock()
	prev := globalManager
	globalManager = m
	globalMu.Unlock()
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Get returns a component logger from the global manager, or a discard
// logger before Initialize.
func Get(component string) zerolog.Logger {
	globalMu.RLock()
	m := globalManager
	globalMu.RUnlock()
	if m == nil {
		return zerolog.Nop()
	}
	return m.Get(component)
}

// Close closes the global manager.
func Close() error {
	globalMu.Lock()
	m := globalManager
	globalManager = nil
	globalMu.Unlock()
	if m != nil {
		return m.Close()
	}
	return nil
}
