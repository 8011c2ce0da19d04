package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// FormatPretty is accepted as another name for the console format.
const FormatPretty = "pretty"

// Logger writes structured events through zerolog. Derived loggers keep
// the service they were created for.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// Init replaces the global logger with one built from cfg, after applying
// the config defaults.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	globalLogger = New(cfg, "")
}

// New builds a logger writing to the output named in cfg.
func New(cfg *Config, service string) *Logger {
	return NewWithWriter(cfg, service, outputWriter(cfg.Output))
}

// NewWithWriter builds a logger writing to w. A non-empty service is added
// to every event. The level in cfg also becomes zerolog's global level.
func NewWithWriter(cfg *Config, service string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var zc zerolog.Context
	switch {
	case isConsole(cfg.Format):
		zc = zerolog.New(consoleWriter(w, service, cfg.NoColor)).With().Timestamp()
	case cfg.Timestamp:
		zc = zerolog.New(w).With().Timestamp()
	default:
		zc = zerolog.New(w).With()
	}
	if service != "" {
		zc = zc.Str("service", service)
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger(), service: service}
}

// NewDefault builds an info-level console logger on stderr.
func NewDefault(service string) *Logger {
	return New(&Config{Level: "info", Format: "console", Output: "stderr", Timestamp: true}, service)
}

func (l *Logger) derive(zc zerolog.Context) *Logger {
	return &Logger{zl: zc.Logger(), service: l.service}
}

type contextKey string

// contextFields are the values WithContext copies from a context.
var contextFields = []string{FieldRunID, FieldTraceID, FieldSpanID}

// ContextWithValue stores value under one of the standard field names so
// that WithContext adds it to every event.
func ContextWithValue(ctx context.Context, field string, value any) context.Context {
	return context.WithValue(ctx, contextKey(field), value)
}

// WithContext adds the run, trace and span ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	for _, field := range contextFields {
		if v := ctx.Value(contextKey(field)); v != nil {
			zc = zc.Str(field, fmt.Sprint(v))
		}
	}
	return l.derive(zc)
}

// WithComponent tags every event with the component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name))
}

// WithFields adds fields to every event.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return l.derive(l.zl.With().Fields(fields))
}

func (l *Logger) Debug(msg string, fields ...map[string]any) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...map[string]any) { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...map[string]any) { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...map[string]any) { emit(l.zl.Error(), msg, fields) }

// emit tolerates a nil event, which zerolog returns for filtered levels.
func emit(e *zerolog.Event, msg string, fields []map[string]any) {
	for _, f := range fields {
		e.Fields(f)
	}
	e.Msg(msg)
}

var globalLogger *Logger

// GetGlobalLogger returns the logger set by Init, or a default console
// logger before Init runs.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = NewDefault("")
	}
	return globalLogger
}

// Error logs through the global logger.
func Error(msg string, fields ...map[string]any) {
	GetGlobalLogger().Error(msg, fields...)
}

// WithContext derives from the global logger.
func WithContext(ctx context.Context) *Logger {
	return GetGlobalLogger().WithContext(ctx)
}

// WithComponent derives from the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == "console" || f == FormatPretty
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

// consoleWriter prints "[ROS][INF] message key:value", with the first
// three letters of service as the leading tag.
func consoleWriter(w io.Writer, service string, noColor bool) zerolog.ConsoleWriter {
	var tag string
	if len(service) >= 3 {
		tag = "[" + strings.ToUpper(service[:3]) + "]"
		if !noColor {
			tag = colorize(tag, "34")
		}
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i any) string {
			return tag + levelTag(strings.ToUpper(fmt.Sprint(i)), noColor)
		},
		FormatMessage:    plain,
		FormatFieldName:  func(i any) string { return fmt.Sprint(i) + ":" },
		FormatFieldValue: plain,
	}
}

func plain(i any) string {
	if i == nil {
		return ""
	}
	return fmt.Sprint(i)
}

var levelStyles = map[string]struct{ short, color string }{
	"DEBUG": {"DBG", "36"},
	"INFO":  {"INF", "32"},
	"WARN":  {"WRN", "33"},
	"ERROR": {"ERR", "31"},
	"FATAL": {"FTL", "35"},
}

func levelTag(lvl string, noColor bool) string {
	style, ok := levelStyles[lvl]
	if !ok {
		return "[" + lvl + "]"
	}
	if noColor {
		return "[" + style.short + "]"
	}
	return colorize("["+style.short+"]", style.color)
}

func colorize(s, code string) string {
	return "\033[" + code + "m" + s + "\033[0m"
}
