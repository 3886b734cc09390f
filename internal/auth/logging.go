package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	loggingEnv = os.Getenv("LOGGING")
	logDir     = envOr("LOG_DIR", "log")
	logMu      sync.Mutex
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LogAuthAttempt appends an authentication attempt record to <LOG_DIR>/auth.log.
// Fields: timestamp (RFC3339) | level | authType | status | identifier? | message?
// level: debug|info|warning|error|fatal
// authType: Local|Admin
// status: Success|Fail
// identifier: email or candidate id (optional)
// message: additional info (optional)
func LogAuthAttempt(level string, authType string, status string, identifier string, message string) {
	if !strings.EqualFold(loggingEnv, "true") {
		return
	}

	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(logDir, "auth.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	ts := time.Now().UTC().Format(time.RFC3339)
	parts := []string{ts, level, authType, status}
	if identifier != "" {
		parts = append(parts, identifier)
	}
	if message != "" {
		parts = append(parts, message)
	}

	// logging never fails a login
	_, _ = f.WriteString(strings.Join(parts, " | ") + "\n")
}
