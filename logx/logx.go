package logx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultLogFile    = "nemclient.log"
	defaultMaxSizeMB  = 100
	defaultMaxAgeDays = 7
	logDir            = "./logs"
)

var (
	mu sync.RWMutex

	lumberjackLogger = &lumberjack.Logger{
		Filename: getLogFilename(),
		MaxSize:  envInt("LOGFILE_MAX_SIZE_MB", defaultMaxSizeMB), // megabytes
		MaxAge:   envInt("LOGFILE_MAX_AGE_DAYS", defaultMaxAgeDays),
	}

	logger = log.New(lumberjackLogger, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func getLogFilename() string {
	if logFile := os.Getenv("LOGFILE"); logFile != "" {
		return filepath.Join(logDir, logFile)
	}
	return filepath.Join(logDir, defaultLogFile)
}

func envInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Configure replaces the log destination. Zero values keep the current setting.
func Configure(filename string, maxSizeMB, maxAgeDays int) {
	mu.Lock()
	defer mu.Unlock()

	next := &lumberjack.Logger{
		Filename: lumberjackLogger.Filename,
		MaxSize:  lumberjackLogger.MaxSize,
		MaxAge:   lumberjackLogger.MaxAge,
	}
	if filename != "" {
		next.Filename = filename
	}
	if maxSizeMB > 0 {
		next.MaxSize = maxSizeMB
	}
	if maxAgeDays > 0 {
		next.MaxAge = maxAgeDays
	}

	_ = lumberjackLogger.Close()
	lumberjackLogger = next
	logger = log.New(lumberjackLogger, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

// Filename returns the file currently written to
func Filename() string {
	mu.RLock()
	defer mu.RUnlock()
	return lumberjackLogger.Filename
}

func write(level, color, category string, content []interface{}) {
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[%s][%s]%s", color, level, category, ColorReset)

	mu.RLock()
	defer mu.RUnlock()
	logger.Printf("%s: %s", coloredCategory, message)
}

func Info(category string, content ...interface{}) {
	write("INFO", ColorGreen, category, content)
}

func Error(category string, content ...interface{}) {
	write("ERROR", ColorRed, category, content)
}

func Warn(category string, content ...interface{}) {
	write("WARN", ColorYellow, category, content)
}

func Debug(category string, content ...interface{}) {
	write("DEBUG", ColorBlue, category, content)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
