package logging

import (
	"github.com/mason-leap-lab/infinicache/common/logger"
)

// Logger is the leveled logger used by the harness and the benchmark CLI.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var _ Logger = new(logger.ColorLogger)

// New returns a colored logger at info level, tagged with prefix.
func New(prefix string) *logger.ColorLogger {
	return &logger.ColorLogger{
		Prefix: prefix,
		Level:  logger.LOG_LEVEL_INFO,
		Color:  true,
	}
}

// SetVerbose switches l between info and debug level.
func SetVerbose(l *logger.ColorLogger, verbose bool) {
	l.Verbose = verbose
	if verbose {
		l.Level = logger.LOG_LEVEL_ALL
	} else {
		l.Level = logger.LOG_LEVEL_INFO
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
