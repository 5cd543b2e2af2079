package common

import (
	"fmt"
	"os"
)

// Logger represents a minimal levelled logger
type Logger interface {
	// Debugf handles debug level messages
	Debugf(format string, args ...interface{})
	// Infof handles info level messages
	Infof(format string, args ...interface{})
	// Warnf handles warn level messages
	Warnf(format string, args ...interface{})
	// Errorf handles error level messages
	Errorf(format string, args ...interface{})
	// Fatalf handles fatal level messages, and must exit the application
	Fatalf(format string, args ...interface{})
	// Panicf handles panic level messages, and must panic the application
	Panicf(format string, args ...interface{})
}

// StubLogger satisfies the Logger interface, and drops everything below fatal
type StubLogger struct{}

// Debugf is a noop
func (l *StubLogger) Debugf(format string, args ...interface{}) {}

// Infof is a noop
func (l *StubLogger) Infof(format string, args ...interface{}) {}

// Warnf is a noop
func (l *StubLogger) Warnf(format string, args ...interface{}) {}

// Errorf is a noop
func (l *StubLogger) Errorf(format string, args ...interface{}) {}

// Fatalf exits the application
func (l *StubLogger) Fatalf(format string, args ...interface{}) {
	os.Exit(1)
}

// Panicf panics with the formatted message
func (l *StubLogger) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

const logTag = `gohyperion`

var (
	// Log is the package-wide logger, tagged [gohyperion].  Messages about a
	// specific server should go through ServerLogger instead.
	Log Logger = &taggedLogger{tag: logTag}

	// sink receives every tagged message, set via SetLogger
	sink Logger = new(StubLogger)
)

// taggedLogger prefixes messages with its tag and hands them to the current
// sink, so loggers obtained before SetLogger follow the change.
type taggedLogger struct {
	tag string
}

// ServerLogger returns a Logger tagging each message with the server address,
// eg. "[gohyperion 127.0.0.1:19444] ", so logs from several clients can be
// told apart.
func ServerLogger(address string) Logger {
	if address == `` {
		return Log
	}
	return &taggedLogger{tag: logTag + ` ` + address}
}

func (l *taggedLogger) Debugf(format string, args ...interface{}) {
	sink.Debugf(l.format(format), args...)
}

func (l *taggedLogger) Infof(format string, args ...interface{}) {
	sink.Infof(l.format(format), args...)
}

func (l *taggedLogger) Warnf(format string, args ...interface{}) {
	sink.Warnf(l.format(format), args...)
}

func (l *taggedLogger) Errorf(format string, args ...interface{}) {
	sink.Errorf(l.format(format), args...)
}

func (l *taggedLogger) Fatalf(format string, args ...interface{}) {
	sink.Fatalf(l.format(format), args...)
}

func (l *taggedLogger) Panicf(format string, args ...interface{}) {
	sink.Panicf(l.format(format), args...)
}

func (l *taggedLogger) format(format string) string {
	return `[` + l.tag + `] ` + format
}

// SetLogger routes all gohyperion logs to logger.  A nil logger restores the
// StubLogger.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = new(StubLogger)
	}
	sink = logger
}
