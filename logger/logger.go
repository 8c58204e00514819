package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// ParseLevel accepts debug, info, warn(ing), error and fatal.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return LevelInfo, errors.Errorf("unknown log level %q", s)
}

// Interface logger interface
type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
}

type logger struct {
	sync.Mutex
	lvl LogLevel
	w   io.Writer
}

var labels = map[LogLevel]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
	LevelFatal: "[FATAL] ",
}

// NewStdLogger output log to command line
func NewStdLogger() *logger {
	return NewWriterLogger(os.Stdout)
}

// NewWriterLogger output log to w
func NewWriterLogger(w io.Writer) *logger {
	return &logger{lvl: LevelInfo, w: w}
}

// NewFileLogger output log to a file
func NewFileLogger(filePath string) (*logger, error) {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "fail to create log file")
	}
	return NewWriterLogger(f), nil
}

func (l *logger) SetLevel(lvl LogLevel) {
	l.Lock()
	l.lvl = lvl
	l.Unlock()
}

func (l *logger) output(lvl LogLevel, format string, v ...interface{}) {
	l.Lock()
	defer l.Unlock()
	if lvl < l.lvl {
		return
	}
	fmt.Fprintf(l.w, labels[lvl]+format+"\n", v...)
}

func (l *logger) Debugf(format string, v ...interface{}) {
	l.output(LevelDebug, format, v...)
}

func (l *logger) Infof(format string, v ...interface{}) {
	l.output(LevelInfo, format, v...)
}

func (l *logger) Warnf(format string, v ...interface{}) {
	l.output(LevelWarn, format, v...)
}

func (l *logger) Errorf(format string, v ...interface{}) {
	l.output(LevelError, format, v...)
}

// Fatalf logs and exits the process.
func (l *logger) Fatalf(format string, v ...interface{}) {
	l.output(LevelFatal, format, v...)
	os.Exit(1)
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
}

// NewZapLogger returns a structured production logger writing JSON to
// stderr, or to file when it is not empty.
func NewZapLogger(lvl LogLevel, file string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevels[lvl])
	cfg.Sampling = nil
	if file != "" {
		cfg.OutputPaths = []string{file}
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}
	return l.Sugar(), nil
}

// New picks a backend: format "json" uses zap, anything else the plain
// text logger on stdout or file.
func New(level, file, format string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if format == "json" {
		return NewZapLogger(lvl, file)
	}
	var l *logger
	if file != "" {
		if l, err = NewFileLogger(file); err != nil {
			return nil, err
		}
	} else {
		l = NewStdLogger()
	}
	l.SetLevel(lvl)
	return l, nil
}

type nop struct{}

func (nop) Debugf(string, ...interface{}) {}
func (nop) Infof(string, ...interface{})  {}
func (nop) Warnf(string, ...interface{})  {}
func (nop) Errorf(string, ...interface{}) {}
func (nop) Fatalf(string, ...interface{}) {}

// Nop discards everything.
func Nop() Logger {
	return nop{}
}
