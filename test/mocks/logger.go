package mocks

import (
	"fmt"
	"strings"
	"sync"

	commonslog "github.com/LerianStudio/lib-commons/commons/log"
)

// Entry is one recorded log line.
type Entry struct {
	Level   string
	Message string
}

// Logger records every message written through the commons logger interface.
// The zero value is ready to use.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLogger creates a new recording logger
func NewLogger() *Logger {
	return &Logger{}
}

func (m *Logger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{Level: level, Message: strings.TrimSuffix(msg, "\n")})
}

func (m *Logger) Info(args ...any)                  { m.record("INFO", fmt.Sprint(args...)) }
func (m *Logger) Infof(format string, args ...any)  { m.record("INFO", fmt.Sprintf(format, args...)) }
func (m *Logger) Infoln(args ...any)                { m.record("INFO", fmt.Sprintln(args...)) }
func (m *Logger) Warn(args ...any)                  { m.record("WARN", fmt.Sprint(args...)) }
func (m *Logger) Warnf(format string, args ...any)  { m.record("WARN", fmt.Sprintf(format, args...)) }
func (m *Logger) Warnln(args ...any)                { m.record("WARN", fmt.Sprintln(args...)) }
func (m *Logger) Error(args ...any)                 { m.record("ERROR", fmt.Sprint(args...)) }
func (m *Logger) Errorf(format string, args ...any) { m.record("ERROR", fmt.Sprintf(format, args...)) }
func (m *Logger) Errorln(args ...any)               { m.record("ERROR", fmt.Sprintln(args...)) }
func (m *Logger) Debug(args ...any)                 { m.record("DEBUG", fmt.Sprint(args...)) }
func (m *Logger) Debugf(format string, args ...any) { m.record("DEBUG", fmt.Sprintf(format, args...)) }
func (m *Logger) Debugln(args ...any)               { m.record("DEBUG", fmt.Sprintln(args...)) }
func (m *Logger) Fatal(args ...any)                 { m.record("FATAL", fmt.Sprint(args...)) }
func (m *Logger) Fatalf(format string, args ...any) { m.record("FATAL", fmt.Sprintf(format, args...)) }
func (m *Logger) Fatalln(args ...any)               { m.record("FATAL", fmt.Sprintln(args...)) }

func (m *Logger) WithDefaultMessageTemplate(string) commonslog.Logger { return m }
func (m *Logger) WithFields(...any) commonslog.Logger                 { return m }
func (m *Logger) Sync() error                                         { return nil }

// Entries returns a copy of the recorded lines.
func (m *Logger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Entry(nil), m.entries...)
}

// Count returns how many lines were written at level.
func (m *Logger) Count(level string) int {
	n := 0

	for _, e := range m.Entries() {
		if e.Level == level {
			n++
		}
	}

	return n
}

// Contains reports whether any line, at any level, contains substr.
func (m *Logger) Contains(substr string) bool {
	return m.ContainsAt("", substr)
}

// ContainsAt reports whether a line at level contains substr. An empty level matches all.
func (m *Logger) ContainsAt(level, substr string) bool {
	for _, e := range m.Entries() {
		if (level == "" || e.Level == level) && strings.Contains(e.Message, substr) {
			return true
		}
	}

	return false
}

// AsLogger returns m as the pointer-to-interface form the clients accept.
func (m *Logger) AsLogger() *commonslog.Logger {
	var l commonslog.Logger = m

	return &l
}
