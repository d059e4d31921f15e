// Package output provides console and file logging for gitsync.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// kindKey is the record attribute that tells the console handler how to style a message
const kindKey = "kind"

// Message kinds beyond the plain slog levels
const (
	kindStep    = "step"
	kindOutput  = "output"
	kindCommand = "command"
	kindSuccess = "success"
)

// Rotation configures log file rotation
type Rotation struct {
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// DefaultRotation keeps up to 2 old files of 1MB each for 30 days
var DefaultRotation = Rotation{
	MaxSize:    1,
	MaxBackups: 2,
	MaxAge:     30,
}

// Options configures a Splog
type Options struct {
	// Writer receives console output. Defaults to os.Stdout.
	Writer io.Writer
	// Debug enables debug messages on the console.
	Debug bool
	// Color styles console messages with lipgloss.
	Color bool
	// LogFile, when set, receives every record with timestamps.
	LogFile  string
	Rotation Rotation
}

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
	color     bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	msg := record.Message
	if h.color {
		msg = h.style(record, msg)
	}
	_, err := fmt.Fprintln(h.writer, msg)
	return err
}

func (h *simpleHandler) style(record slog.Record, msg string) string {
	switch record.Level {
	case slog.LevelError:
		return ColorRed(msg)
	case slog.LevelWarn:
		return ColorYellow(msg)
	case slog.LevelDebug:
		return ColorDim(msg)
	}

	kind := ""
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == kindKey {
			kind = a.Value.String()
			return false
		}
		return true
	})
	switch kind {
	case kindStep:
		return ColorCyan(msg)
	case kindCommand:
		return ColorDim(msg)
	case kindSuccess:
		return ColorGreen(msg)
	default:
		return msg
	}
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	logWriter io.WriteCloser
}

// NewSplog creates a new splog instance with console-only logging to stdout.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig(Options{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithConfig creates a new splog instance with optional file logging
func NewSplogWithConfig(opts Options) (*Splog, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	splog := &Splog{}

	handlers := []slog.Handler{&simpleHandler{
		writer:    writer,
		debugMode: opts.Debug,
		color:     opts.Color,
	}}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotation := opts.Rotation
		if rotation == (Rotation{}) {
			rotation = DefaultRotation
		}
		lumberjackLogger := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    rotation.MaxSize,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAge,
			Compress:   false,
		}
		splog.logWriter = lumberjackLogger

		handlers = append(handlers, slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// sprintf formats only when args are given, so messages may contain verbs safely
func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func (s *Splog) log(level slog.Level, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.log(slog.LevelInfo, sprintf(format, args))
}

// Step announces the start of a sync step
func (s *Splog) Step(format string, args ...interface{}) {
	s.log(slog.LevelInfo, sprintf(format, args), slog.String(kindKey, kindStep))
}

// Output writes captured command output verbatim
func (s *Splog) Output(content string) {
	s.log(slog.LevelInfo, content, slog.String(kindKey, kindOutput))
}

// Command writes a command line that was run
func (s *Splog) Command(format string, args ...interface{}) {
	s.log(slog.LevelInfo, sprintf(format, args), slog.String(kindKey, kindCommand))
}

// Success writes a success message
func (s *Splog) Success(format string, args ...interface{}) {
	s.log(slog.LevelInfo, sprintf(format, args), slog.String(kindKey, kindSuccess))
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.log(slog.LevelWarn, sprintf(format, args))
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.log(slog.LevelError, sprintf(format, args))
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...interface{}) {
	s.log(slog.LevelDebug, sprintf(format, args))
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
