package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const logFileName = "etaprogress/etaprogress.log"

var (
	debugLogger *log.Logger

	DebugEnabled = false

	logFile *os.File
)

// DefaultPath returns the log file location under the XDG state home.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, logFileName)
}

// InitLogging sets up logging based on configuration. Nothing is written
// unless debugMode is set.
func InitLogging(debugMode bool, logPath string) error {
	DebugEnabled = debugMode

	if !DebugEnabled || logPath == "" {
		return nil
	}

	err := os.MkdirAll(filepath.Dir(logPath), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Close()
	logFile = f
	debugLogger = log.New(f, "", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// SetOutput enables debug logging to w.
func SetOutput(w io.Writer) {
	DebugEnabled = w != nil
	if w == nil {
		debugLogger = nil
		return
	}

	debugLogger = log.New(w, "", log.Lshortfile)
}

// Close closes the log file if open.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func output(level, format string, v []any) {
	if !DebugEnabled || debugLogger == nil {
		return
	}

	_ = debugLogger.Output(3, "["+level+"] "+fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	output("INFO", format, v)
}

// Errorf logs an error message if debug mode is enabled.
func Errorf(format string, v ...any) {
	output("ERROR", format, v)
}

func Debugf(format string, v ...any) {
	output("DEBUG", format, v)
}

func Warnf(format string, v ...any) {
	output("WARNING", format, v)
}
