package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type FileLoggerImpl struct {
	filePath string
	mutex    sync.Mutex
}

func NewFileLogger(logPath string) (FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &FileLoggerImpl{
		filePath: logPath,
	}, nil
}

func (l *FileLoggerImpl) LogRequest(providerName, target string) {
	logEntry := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"provider":  providerName,
		"event":     "request",
		"target":    target,
	}

	l.writeLog(logEntry)
}

// LogResponse logs a successful provider response
func (l *FileLoggerImpl) LogResponse(providerName, target string, summary map[string]interface{}, duration time.Duration) {
	logEntry := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"provider":    providerName,
		"event":       "response",
		"target":      target,
		"duration_ms": duration.Milliseconds(),
		"response":    summary,
	}

	l.writeLog(logEntry)
}

// LogError logs a failed provider call
func (l *FileLoggerImpl) LogError(providerName, target string, err error, duration time.Duration) {
	logEntry := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"provider":    providerName,
		"event":       "error",
		"target":      target,
		"duration_ms": duration.Milliseconds(),
		"error":       err.Error(),
	}

	l.writeLog(logEntry)
}

func (l *FileLoggerImpl) writeLog(entry map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	file, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.Error("open log file", "error", err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("close log file", "error", closeErr)
		}
	}()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		slog.Error("marshal log entry", "error", err)
		return
	}

	if _, err := file.WriteString(string(jsonData) + "\n"); err != nil {
		slog.Error("write log entry", "error", err)
	}
}
