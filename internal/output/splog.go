package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler writes bare messages, without timestamps or level prefixes.
// Warnings and errors go to errWriter.
type simpleHandler struct {
	writer    io.Writer
	errWriter io.Writer
	debugMode bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	w := h.writer
	if record.Level >= slog.LevelWarn {
		w = h.errWriter
	}
	_, err := fmt.Fprintln(w, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// newRotatingWriter creates a lumberjack logger sized from GL_LOG_MAX_* variables.
func newRotatingWriter(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,  // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}

	if n, ok := envInt("GL_LOG_MAX_SIZE"); ok && n > 0 {
		config.MaxSize = n
	}
	if n, ok := envInt("GL_LOG_MAX_BACKUPS"); ok && n >= 0 {
		config.MaxBackups = n
	}
	if n, ok := envInt("GL_LOG_MAX_AGE"); ok && n > 0 {
		config.MaxAge = n
	}
	return config
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
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

// SplogOptions configures NewSplog.
type SplogOptions struct {
	// Writer receives regular output. Defaults to stdout.
	Writer io.Writer
	// ErrWriter receives warnings and errors. Defaults to stderr.
	ErrWriter io.Writer
	// Debug shows debug messages on the console.
	Debug bool
	// LogFile, when set, receives every message with a timestamp.
	LogFile string
}

// Splog is gl's logger: short messages for the user on the console and,
// optionally, a rotated debug log on disk.
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
}

// NewSplog creates a console-only logger writing to stdout and stderr.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(SplogOptions{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithOptions creates a logger from opts.
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	splog := &Splog{writer: opts.Writer}

	handlers := []slog.Handler{&simpleHandler{
		writer:    opts.Writer,
		errWriter: opts.ErrWriter,
		debugMode: opts.Debug,
	}}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := newRotatingWriter(opts.LogFile)
		splog.logWriter = rotating

		handlers = append(handlers, slog.NewTextHandler(rotating, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

func (s *Splog) log(level slog.Level, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.log(slog.LevelInfo, "", format, args)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.log(slog.LevelWarn, "⚠️  ", format, args)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.log(slog.LevelError, "❌ ", format, args)
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...interface{}) {
	s.log(slog.LevelDebug, "", format, args)
}

// Tip writes a hint on how to continue
func (s *Splog) Tip(format string, args ...interface{}) {
	s.log(slog.LevelInfo, "💡 ", format, args)
}

// Page writes preformatted output as is
func (s *Splog) Page(content string) {
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Writer returns the console writer
func (s *Splog) Writer() io.Writer {
	return s.writer
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
