package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gioco-play/easy-i18n/i18n"
)

const (
	// ModuleUpload tags lines written by the uploader
	ModuleUpload = "UPLOAD"
	// ModuleCredentials tags lines written while resolving credentials
	ModuleCredentials = "CREDENTIALS"
	// ModuleSystem tags header and trailer lines
	ModuleSystem = "SYSTEM"

	logFilePrefix = "googlecode-upload-"
	keepLogs      = 10
)

// LogContext manages the log file of one upload run
type LogContext struct {
	mu          sync.Mutex
	logFile     *os.File
	logFileName string
	logDir      string
	verbose     bool
	console     io.Writer
	success     bool
}

// NewLogContext creates a new log context with googlecode-upload-{timestamp}.log
// logFileName can be:
//   - Empty string: auto-generate googlecode-upload-{timestamp}.log in logDir
//   - Relative path: will be joined with logDir
//   - Absolute path: will be used as-is
func NewLogContext(logDir string, logFileName string) (*LogContext, error) {
	var finalLogFileName string

	switch {
	case logFileName == "":
		if err := ensureLogsDir(logDir); err != nil {
			return nil, err
		}
		cleanOldLogs(logDir, keepLogs)
		timestamp := time.Now().Format("20060102150405")
		finalLogFileName = filepath.Join(logDir, fmt.Sprintf("%s%s.log", logFilePrefix, timestamp))
	case filepath.IsAbs(logFileName):
		finalLogFileName = logFileName
		logDir = filepath.Dir(logFileName)
	default:
		finalLogFileName = filepath.Join(logDir, logFileName)
	}
	if err := ensureLogsDir(filepath.Dir(finalLogFileName)); err != nil {
		return nil, err
	}

	logFile, err := os.Create(finalLogFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %v", err)
	}

	ctx := &LogContext{
		logFile:     logFile,
		logFileName: finalLogFileName,
		logDir:      logDir,
		console:     os.Stdout,
	}

	ctx.WriteLog(ModuleSystem, "=== Google Code Upload Log Started ===")
	ctx.WriteLog(ModuleSystem, "Timestamp: %s", time.Now().Format("2006-01-02 15:04:05"))

	return ctx, nil
}

// SetVerbose echoes every debug line to the console as well
func (lc *LogContext) SetVerbose(verbose bool) {
	lc.mu.Lock()
	lc.verbose = verbose
	lc.mu.Unlock()
}

// SetConsole replaces the writer verbose lines are echoed to
func (lc *LogContext) SetConsole(w io.Writer) {
	lc.mu.Lock()
	lc.console = w
	lc.mu.Unlock()
}

// WriteLog writes a log entry with [MODULE] prefix and timestamp
func (lc *LogContext) WriteLog(module string, format string, args ...interface{}) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.logFile == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(lc.logFile, "[%s] [%s] %s\n", timestamp, module, message)
	lc.logFile.Sync()
}

// Debugf records an uploader debug line; verbose runs also print it
func (lc *LogContext) Debugf(format string, args ...interface{}) {
	lc.debugf(ModuleUpload, format, args...)
}

func (lc *LogContext) debugf(module string, format string, args ...interface{}) {
	lc.WriteLog(module, format, args...)

	lc.mu.Lock()
	verbose, console := lc.verbose, lc.console
	lc.mu.Unlock()
	if verbose && console != nil {
		i18n.Fprintf(console, "[DEBUG] "+format+"\n", args...)
	}
}

// ForModule returns a logger whose Debugf lines carry the given module tag
func (lc *LogContext) ForModule(module string) *ModuleLogger {
	return &ModuleLogger{ctx: lc, module: module}
}

// ModuleLogger writes debug lines under a fixed module tag
type ModuleLogger struct {
	ctx    *LogContext
	module string
}

// Debugf records a debug line under the logger's module
func (ml *ModuleLogger) Debugf(format string, args ...interface{}) {
	ml.ctx.debugf(ml.module, format, args...)
}

// MarkSuccess records that the run finished without error
func (lc *LogContext) MarkSuccess() {
	lc.mu.Lock()
	lc.success = true
	lc.mu.Unlock()
}

// GetFileName returns the log file path
func (lc *LogContext) GetFileName() string {
	return lc.logFileName
}

// Content returns everything written to the log file so far
func (lc *LogContext) Content() (string, error) {
	data, err := os.ReadFile(lc.logFileName)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close writes the trailer line and closes the log file
func (lc *LogContext) Close() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.logFile == nil {
		return
	}
	status := "FAILED"
	if lc.success {
		status = "SUCCESS"
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(lc.logFile, "[%s] [%s] === Google Code Upload Log Ended (%s) ===\n", timestamp, ModuleSystem, status)
	lc.logFile.Close()
	lc.logFile = nil
}

// ExtractErrorSummary extracts error summary from log content based on module type
func ExtractErrorSummary(module string, logContent string) string {
	if logContent == "" {
		return ""
	}

	var keywords []string
	switch module {
	case ModuleUpload:
		keywords = []string{"error", "failed", "timeout", "connection", "refused", "http/", "ssl", "certificate", "x509"}
	case ModuleCredentials:
		keywords = []string{"error", "failed", "not found", "denied", "credential"}
	}

	lines := strings.Split(strings.TrimRight(logContent, "\n"), "\n")
	var errorLines []string
	if len(keywords) > 0 {
		for i := len(lines) - 1; i >= 0 && len(errorLines) < 20; i-- {
			line := strings.ToLower(lines[i])
			for _, kw := range keywords {
				if strings.Contains(line, kw) {
					errorLines = append([]string{lines[i]}, errorLines...)
					break
				}
			}
		}
	}

	// No keyword hit: fall back to the last 20 lines
	if len(errorLines) == 0 {
		start := len(lines) - 20
		if start < 0 {
			start = 0
		}
		errorLines = lines[start:]
	}

	return strings.Join(errorLines, "\n")
}

func ensureLogsDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %v", dir, err)
	}
	return nil
}

// cleanOldLogs keeps the newest keep-1 generated log files, making room for the next one
func cleanOldLogs(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), logFilePrefix) && strings.HasSuffix(entry.Name(), ".log") {
			names = append(names, entry.Name())
		}
	}
	if len(names) < keep {
		return
	}
	// Timestamped names sort chronologically
	sort.Strings(names)
	for _, name := range names[:len(names)-keep+1] {
		os.Remove(filepath.Join(dir, name))
	}
}

