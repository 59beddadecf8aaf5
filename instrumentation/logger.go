package instrumentation

import (
	logging "github.com/ipfs/go-log/v2"
)

type Logger interface {
	Debug(activity string, message string)
	Error(activity string, message string)
	Fatal(activity string, message string)
	Info(activity string, message string)
	Panic(activity string, message string)
	Warn(activity string, message string)
}

type NilLogger struct{}

func (*NilLogger) Debug(string, string) {}
func (*NilLogger) Error(string, string) {}
func (*NilLogger) Fatal(string, string) {}
func (*NilLogger) Info(string, string)  {}
func (*NilLogger) Panic(string, string) {}
func (*NilLogger) Warn(string, string)  {}

// GoLogger writes through a go-log (zap) event logger, attaching the activity as a structured field.
type GoLogger struct {
	log *logging.ZapEventLogger
}

var _ Logger = (*GoLogger)(nil)

// NewGoLogger returns a Logger for the named go-log subsystem. The level of the subsystem is
// controlled the usual go-log way, e.g. logging.SetLogLevel(system, "debug") or GOLOG_LOG_LEVEL.
func NewGoLogger(system string) *GoLogger {
	return &GoLogger{log: logging.Logger(system)}
}

func (l *GoLogger) Debug(activity string, message string) {
	l.log.Debugw(message, "activity", activity)
}

func (l *GoLogger) Error(activity string, message string) {
	l.log.Errorw(message, "activity", activity)
}

func (l *GoLogger) Fatal(activity string, message string) {
	l.log.Fatalw(message, "activity", activity)
}

func (l *GoLogger) Info(activity string, message string) {
	l.log.Infow(message, "activity", activity)
}

func (l *GoLogger) Panic(activity string, message string) {
	l.log.Panicw(message, "activity", activity)
}

func (l *GoLogger) Warn(activity string, message string) {
	l.log.Warnw(message, "activity", activity)
}
