package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// Logger writes leveled, scope-tagged lines to stderr.
type Logger struct {
	debug bool
}

var (
	infoTag  = color.New(color.FgGreen).SprintFunc()
	warnTag  = color.New(color.FgYellow).SprintFunc()
	errorTag = color.New(color.FgRed).SprintFunc()
	debugTag = color.New(color.FgCyan).SprintFunc()
)

func New(debug bool) *Logger {
	return &Logger{debug: debug}
}

func (l *Logger) Info(scope, format string, args ...interface{}) {
	l.write(infoTag("INFO"), scope, format, args...)
}

func (l *Logger) Warn(scope, format string, args ...interface{}) {
	l.write(warnTag("WARN"), scope, format, args...)
}

func (l *Logger) Error(scope, format string, args ...interface{}) {
	l.write(errorTag("ERROR"), scope, format, args...)
}

func (l *Logger) Debug(scope, format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.write(debugTag("DEBUG"), scope, format, args...)
}

func (l *Logger) write(level, scope, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %-5s [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05"), level, scope, fmt.Sprintf(format, args...))
}
