package console

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Instance is the global console, so it doesn't have to be passed around
// everywhere.
var Instance = &Console{
	Color: IsTTY(os.Stderr),
	Level: InfoLevel,
}

// SetLevel sets the log level.
func SetLevel(level Level) {
	Instance.Level = level
}

// SetColor sets whether to print colors.
func SetColor(color bool) {
	Instance.Color = color
}

// Debug level message.
func Debug(msg string) {
	Instance.Debug(msg)
}

// Info level message.
func Info(msg string) {
	Instance.Info(msg)
}

// Warn level message.
func Warn(msg string) {
	Instance.Warn(msg)
}

// Error level message.
func Error(msg string) {
	Instance.Error(msg)
}

// Fatal level message, followed by exit.
func Fatal(msg string) {
	Instance.Fatal(msg)
}

func Debugf(msg string, v ...interface{}) {
	Instance.Debugf(msg, v...)
}

func Infof(msg string, v ...interface{}) {
	Instance.Infof(msg, v...)
}

func Warnf(msg string, v ...interface{}) {
	Instance.Warnf(msg, v...)
}

func Errorf(msg string, v ...interface{}) {
	Instance.Errorf(msg, v...)
}

func Fatalf(msg string, v ...interface{}) {
	Instance.Fatalf(msg, v...)
}

// Output a line to stdout.
func Output(s string) {
	Instance.Output(s)
}

func Outputf(msg string, v ...interface{}) {
	Instance.Outputf(msg, v...)
}

// IsTTY checks whether a file is a terminal, e.g. IsTTY(os.Stdout).
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}
