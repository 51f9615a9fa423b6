// Package log provides structured logging for splitcheck on top of zerolog.
//
// Estimators obtain a named Logger and attach their context once:
//
//	logger := log.GetLoggerWithName("linear").With(
//		log.ModelNameKey, "LinearRegression",
//		log.ComponentKey, "linear",
//	)
//	logger.Info("Training started", log.SamplesKey, r, log.FeaturesKey, c)
//
// Programs configure the global level once at startup with SetupLogger.
// Output goes to stderr so that stdout only carries program results.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Standard field keys.
const (
	ComponentKey   = "component"
	ModelNameKey   = "model_name"
	OperationKey   = "operation"
	PhaseKey       = "phase"
	SamplesKey     = "n_samples"
	FeaturesKey    = "n_features"
	PredsKey       = "n_predictions"
	DurationMsKey  = "duration_ms"
	RandomStateKey = "random_state"
	TestSizeKey    = "test_size"
	PathKey        = "path"
)

// Operation and phase values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationSplit   = "split"
	OperationScore   = "score"
	OperationScan    = "scan"

	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"
	PhaseDataPrep   = "data_preparation"
)

// Logger is the key/value logging interface used by the library packages.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	With(fields ...any) Logger
}

// LoggerProvider hands out loggers sharing one configuration.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) { l.emit(l.zl.Debug(), msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...any)  { l.emit(l.zl.Info(), msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...any)  { l.emit(l.zl.Warn(), msg, fields) }

// Error treats a leading error value in fields as the event's error.
func (l *zerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	l.emit(ev, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *zerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
}

// ZerologProvider is a LoggerProvider backed by a single zerolog.Logger.
type ZerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider creates a provider writing console-formatted logs to stderr.
func NewZerologProvider(level zerolog.Level) *ZerologProvider {
	return NewConsoleProvider(os.Stderr, level)
}

// NewConsoleProvider creates a provider writing console-formatted logs to w.
func NewConsoleProvider(w io.Writer, level zerolog.Level) *ZerologProvider {
	return NewZerologProviderWithWriter(newConsoleWriter(w), level)
}

// NewZerologProviderWithWriter creates a provider writing to w.
func NewZerologProviderWithWriter(w io.Writer, level zerolog.Level) *ZerologProvider {
	return &ZerologProvider{
		base: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// GetLogger returns the provider's root logger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{zl: p.base}
}

// GetLoggerWithName returns a logger tagged with logger=name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{zl: p.base.With().Str("logger", name).Logger()}
}

// Zerolog exposes the underlying zerolog logger.
func (p *ZerologProvider) Zerolog() *zerolog.Logger {
	return &p.base
}

var (
	mu       sync.RWMutex
	provider = NewZerologProvider(zerolog.WarnLevel)
)

func newConsoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
}

// ToLogLevel parses a level name, defaulting to info for unknown input.
func ToLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// SetupLogger replaces the global provider with one at the given level.
func SetupLogger(level string) {
	SetProvider(NewZerologProvider(ToLogLevel(level)))
}

// SetOutput replaces the global provider with one writing JSON lines to w,
// keeping the current level. Used by tests to capture log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	level := provider.base.GetLevel()
	provider = NewZerologProviderWithWriter(w, level)
}

// SetProvider installs p as the global provider.
func SetProvider(p *ZerologProvider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

// GetProvider returns the global provider.
func GetProvider() LoggerProvider {
	mu.RLock()
	defer mu.RUnlock()
	return provider
}

// GetLogger returns the global zerolog logger for event-style logging.
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return provider.Zerolog()
}

// GetLoggerWithName returns a named Logger from the global provider.
func GetLoggerWithName(name string) Logger {
	return GetProvider().GetLoggerWithName(name)
}

// LogError logs err at error level. "%+v" detail (stack trace) is attached
// at debug level only.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	zl := GetLogger()
	ev := zl.Error().Err(err)
	if zl.GetLevel() <= zerolog.DebugLevel {
		ev = ev.Str("detail", fmt.Sprintf("%+v", err))
	}
	ev.Msg(msg)
}
