package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu          sync.RWMutex
	debugLogger *log.Logger
	logFile     *os.File
)

// InitLogger initializes the debug logger to write to a file next to the executable
func InitLogger() error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	exeDir := filepath.Dir(exePath)
	logPath := filepath.Join(exeDir, fmt.Sprintf("movie-recommender-debug-%s.log", time.Now().Format("2006-01-02")))

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	logFile = f
	mu.Unlock()

	InitLoggerTo(f)
	return nil
}

// InitLoggerTo sends log output to w
func InitLoggerTo(w io.Writer) {
	mu.Lock()
	debugLogger = log.New(w, "", log.LstdFlags|log.Lmicroseconds)
	mu.Unlock()

	Info("=== Movie Recommender Debug Log Started ===")
}

func logf(level, format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if debugLogger != nil {
		debugLogger.Printf(level+" "+format, v...)
	}
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	logf("[DEBUG]", format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	logf("[INFO]", format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	logf("[ERROR]", format, v...)
}

// Close ends the log and closes the log file, if any
func Close() {
	Info("=== Movie Recommender Debug Log Ended ===")

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	debugLogger = nil
}
