package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatAuto = "auto"
)

// Logger type is interface for available logging methods.
type Logger interface {
	Trace(...interface{})
	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Error(...interface{})
	Panic(...interface{})
	Fatal(...interface{})
}

// LoggerImpl is a struct that extends sirupsen/logrus.
type LoggerImpl struct {
	Logger         *log.Entry
	Service        string
	LogLevelStr    string
	PrintStackDump bool
}

// NewLogger will create a new logger implementation that writes text or JSON to stderr
// depending on whether stderr is an interactive terminal.
func NewLogger(serviceName string, level string, stackDumpOnPanic bool) *LoggerImpl {
	return NewLoggerWithFormat(serviceName, level, FormatAuto, stackDumpOnPanic)
}

// NewLoggerWithFormat will create a new logger implementation using the supplied format, one of
// FormatText, FormatJSON or FormatAuto.
func NewLoggerWithFormat(serviceName string, level string, format string, stackDumpOnPanic bool) *LoggerImpl {
	log.SetOutput(os.Stderr)
	setFormatter(format)
	logLevel, err := log.ParseLevel(level)
	if err == nil {
		log.SetLevel(logLevel)
	} else {
		fmt.Println("Error setting up logging: ", err)
		os.Exit(1)
	}
	logger := log.WithFields(log.Fields{
		"service": serviceName,
	})
	return &LoggerImpl{Logger: logger, Service: serviceName, LogLevelStr: level, PrintStackDump: stackDumpOnPanic}
}

func setFormatter(format string) {
	switch format {
	case FormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	case FormatText:
		log.SetFormatter(&log.TextFormatter{})
	default: // auto: plain text for people, JSON when running inside a container...
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			log.SetFormatter(&log.TextFormatter{})
		} else {
			log.SetFormatter(&log.JSONFormatter{})
		}
	}
}

// WithRunId returns a copy of the logger that adds field runId to every line.
func (l *LoggerImpl) WithRunId(runId string) *LoggerImpl {
	c := *l
	c.Logger = l.Logger.WithField("runId", runId)
	return &c
}

// Trace log.
func (l *LoggerImpl) Trace(message ...interface{}) {
	l.Logger.Trace(message...)
}

// Debug log.
func (l *LoggerImpl) Debug(message ...interface{}) {
	l.Logger.Debug(message...)
}

// Info log.
func (l *LoggerImpl) Info(message ...interface{}) {
	l.Logger.Info(message...)
}

// Warn log.
func (l *LoggerImpl) Warn(message ...interface{}) {
	l.Logger.Warn(message...)
}

// Error (with stack trace in trace mode or if the user asked for stack dumps).
func (l *LoggerImpl) Error(message ...interface{}) {
	if l.LogLevelStr == "trace" || l.PrintStackDump {
		l.Logger.WithField("stackTrace", fmt.Sprintf("%s", debug.Stack())).Error(message...)
	} else {
		l.Logger.Error(message...)
	}
}

// Panic (with stack trace in debug mode, or if user explicitly sets PrintStackDump).
func (l *LoggerImpl) Panic(message ...interface{}) {
	if l.PrintStackDump || l.LogLevelStr == "debug" || l.LogLevelStr == "trace" {
		l.Logger.WithField("stackTrace", fmt.Sprintf("%s", debug.Stack())).Panic(message...)
	} else {
		l.Logger.Panic(message...)
	}
}

// Fatal (with stack trace in debug mode).
// This causes exit(1) without a stack dump by default.
func (l *LoggerImpl) Fatal(message ...interface{}) {
	if l.LogLevelStr == "debug" || l.LogLevelStr == "trace" {
		l.Logger.WithField("stackTrace", fmt.Sprintf("%s", debug.Stack())).Fatal(message...)
	} else {
		l.Logger.Fatal(message...)
	}
}

// SetOutput will set the log output to the Writer supplied.
func (l *LoggerImpl) SetOutput(writer io.Writer) {
	log.SetOutput(writer)
}

// NullLogger discards everything, for use in tests.
type NullLogger struct{}

func (NullLogger) Trace(...interface{}) {}
func (NullLogger) Debug(...interface{}) {}
func (NullLogger) Info(...interface{})  {}
func (NullLogger) Warn(...interface{})  {}
func (NullLogger) Error(...interface{}) {}
func (NullLogger) Panic(m ...interface{}) {
	panic(fmt.Sprint(m...))
}
func (NullLogger) Fatal(m ...interface{}) {
	panic(fmt.Sprint(m...))
}
