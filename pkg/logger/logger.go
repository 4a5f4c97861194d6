package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Category represents a log category
type Category string

const (
	CategoryAuth      Category = "auth"
	CategoryAPI       Category = "api"
	CategoryDB        Category = "db"
	CategoryGuest     Category = "guest"
	CategoryRsvp      Category = "rsvp"
	CategoryStory     Category = "story"
	CategoryStorage   Category = "storage"
	CategoryScheduler Category = "scheduler"
	CategoryStartup   Category = "startup"
)

// AllCategories lists every category in the order logs are read back.
var AllCategories = []Category{
	CategoryAuth, CategoryAPI, CategoryDB, CategoryGuest, CategoryRsvp,
	CategoryStory, CategoryStorage, CategoryScheduler, CategoryStartup,
}

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger is the main logger struct
type Logger struct {
	mu       sync.Mutex
	logDir   string
	writers  map[Category]*os.File
	console  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
	})
	return err
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	// Create log directory if not exists
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logDir:   logDir,
		writers:  make(map[Category]*os.File),
		console:  console,
		minLevel: LevelDebug,
	}, nil
}

// getWriter returns or creates a file writer for the category
func (l *Logger) getWriter(category Category) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Check if writer exists and is for today
	today := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", category, today)
	path := filepath.Join(l.logDir, filename)

	if writer, exists := l.writers[category]; exists {
		// Check if file is still for today
		if info, err := writer.Stat(); err == nil {
			if info.Name() == filename {
				return writer, nil
			}
		}
		writer.Close()
	}

	// Create new file
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l.writers[category] = file
	return file, nil
}

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// SetMinLevel drops entries below level. Unknown levels are ignored.
func (l *Logger) SetMinLevel(level Level) {
	if _, ok := levelRank[level]; !ok {
		return
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// SetMinLevel sets the minimum level of the default logger
func SetMinLevel(level Level) {
	Default().SetMinLevel(level)
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	l.mu.Lock()
	minLevel := l.minLevel
	l.mu.Unlock()
	if levelRank[entry.Level] < levelRank[minLevel] {
		return
	}

	entry.Timestamp = time.Now()

	// Format as JSON
	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("Error marshaling log entry: %v\n", err)
		return
	}

	// Write to file
	writer, err := l.getWriter(entry.Category)
	if err != nil {
		fmt.Printf("Error getting log writer: %v\n", err)
	} else {
		fmt.Fprintln(writer, string(jsonData))
	}

	// Also write to console if enabled
	if l.console {
		l.printToConsole(entry)
	}
}

// printToConsole prints formatted log to console
func (l *Logger) printToConsole(entry LogEntry) {
	timestamp := entry.Timestamp.Format("15:04:05.000")

	// Color codes for levels
	levelColors := map[Level]string{
		LevelDebug: "\033[36m", // Cyan
		LevelInfo:  "\033[32m", // Green
		LevelWarn:  "\033[33m", // Yellow
		LevelError: "\033[31m", // Red
	}
	reset := "\033[0m"

	color := levelColors[entry.Level]

	fmt.Printf("%s[%s]%s [%s] [%s] %s: %s",
		color,
		entry.Level,
		reset,
		timestamp,
		entry.Category,
		entry.Action,
		entry.Message,
	)

	if entry.UserID != "" {
		fmt.Printf(" (user: %s)", entry.UserID)
	}
	if entry.Duration != "" {
		fmt.Printf(" (duration: %s)", entry.Duration)
	}
	if entry.Error != "" {
		fmt.Printf(" ERROR: %s", entry.Error)
	}
	fmt.Println()

	// Print data if present
	if len(entry.Data) > 0 {
		dataJSON, _ := json.MarshalIndent(entry.Data, "    ", "  ")
		fmt.Printf("    Data: %s\n", string(dataJSON))
	}
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, writer := range l.writers {
		writer.Close()
	}
	l.writers = make(map[Category]*os.File)
}

// Default returns the default logger
func Default() *Logger {
	if defaultLogger == nil {
		// Initialize with default settings if not initialized
		Init("logs", true)
	}
	return defaultLogger
}

// Helper functions for common log operations

func logWithError(level Level, category Category, action, message string, err error, data map[string]interface{}) {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	Default().Log(LogEntry{
		Level:    level,
		Category: category,
		Action:   action,
		Message:  message,
		Error:    errStr,
		Data:     data,
	})
}

// Auth logs admin authentication events
func Auth(action, message string, data map[string]interface{}) {
	Info(CategoryAuth, action, message, data)
}

// AuthError logs authentication errors
func AuthError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryAuth, action, message, err, data)
}

// API logs API request/response events
func API(action, message string, data map[string]interface{}) {
	Info(CategoryAPI, action, message, data)
}

// DB logs database operations
func DB(action, message string, data map[string]interface{}) {
	Debug(CategoryDB, action, message, data)
}

// Guest logs roster changes made by the admin
func Guest(action, message string, data map[string]interface{}) {
	Info(CategoryGuest, action, message, data)
}

// GuestError logs roster errors
func GuestError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryGuest, action, message, err, data)
}

// Rsvp logs self-service RSVP submissions
func Rsvp(action, message string, data map[string]interface{}) {
	Info(CategoryRsvp, action, message, data)
}

// RsvpError logs RSVP errors
func RsvpError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryRsvp, action, message, err, data)
}

// Story logs gallery changes
func Story(action, message string, data map[string]interface{}) {
	Info(CategoryStory, action, message, data)
}

// StoryError logs gallery errors
func StoryError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryStory, action, message, err, data)
}

// Storage logs blob storage operations
func Storage(action, message string, data map[string]interface{}) {
	Info(CategoryStorage, action, message, data)
}

// StorageError logs blob storage errors
func StorageError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryStorage, action, message, err, data)
}

// Scheduler logs scheduled job events
func Scheduler(action, message string, data map[string]interface{}) {
	Info(CategoryScheduler, action, message, data)
}

// SchedulerWarn logs scheduler warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryScheduler, action, message, data)
}

// SchedulerError logs scheduled job failures
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryScheduler, action, message, err, data)
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Info(CategoryStartup, action, message, data)
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, CategoryStartup, action, message, err, data)
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryStartup, action, message, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelInfo,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	logWithError(LevelError, category, action, message, err, data)
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelDebug,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelWarn,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // Filter by category (empty = all)
	Level    Level    // Filter by level (empty = all)
	Lines    int      // Number of lines to return (default 100)
	Search   string   // Search in message/action
}

// ReadLogs reads log entries from files
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads log entries from the logger's log directory
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000 // Max limit
	}

	var entries []LogEntry

	// Get today's date for log files
	today := time.Now().Format("2006-01-02")

	// Determine which categories to read
	categories := AllCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}

	// Read from each category file
	for _, cat := range categories {
		filename := fmt.Sprintf("%s_%s.log", cat, today)
		filePath := filepath.Join(l.logDir, filename)

		// Read file if exists
		data, err := os.ReadFile(filePath)
		if err != nil {
			continue // Skip if file doesn't exist
		}

		// Parse each line as JSON
		for _, line := range strings.Split(string(data), "\n") {
			if line == "" {
				continue
			}

			var entry LogEntry
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				continue
			}

			// Apply filters
			if opts.Level != "" && entry.Level != opts.Level {
				continue
			}
			if opts.Search != "" {
				if !containsIgnoreCase(entry.Message, opts.Search) &&
					!containsIgnoreCase(entry.Action, opts.Search) &&
					!containsIgnoreCase(entry.Error, opts.Search) {
					continue
				}
			}

			entries = append(entries, entry)
		}
	}

	// Sort by timestamp descending (newest first)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	// Limit results
	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}

	return entries, nil
}

// GetLogDir returns the log directory path
func GetLogDir() string {
	return Default().logDir
}

// ListLogFiles returns list of log files
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

// ListLogFiles returns list of log files in the log directory
func (l *Logger) ListLogFiles() ([]string, error) {
	var files []string

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// PruneLogFiles removes log files whose modification time is older than days.
func PruneLogFiles(days int) (int, error) {
	return Default().PruneLogFiles(days)
}

// PruneLogFiles removes log files in the logger's directory older than days.
func (l *Logger) PruneLogFiles(days int) (int, error) {
	if days <= 0 {
		return 0, nil
	}

	files, err := l.ListLogFiles()
	if err != nil {
		return 0, err
	}

	threshold := time.Now().AddDate(0, 0, -days)
	removed := 0
	for _, name := range files {
		path := filepath.Join(l.logDir, name)
		info, err := os.Stat(path)
		if err != nil || !info.ModTime().Before(threshold) {
			continue
		}

		l.mu.Lock()
		for category, writer := range l.writers {
			if filepath.Base(writer.Name()) == name {
				writer.Close()
				delete(l.writers, category)
			}
		}
		l.mu.Unlock()

		if err := os.Remove(path); err == nil {
			removed++
		}
	}

	return removed, nil
}
