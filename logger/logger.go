/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger provides the small structured-logging facade used by the
// selector and socket packages to report lifecycle and readiness-cycle
// events. It wraps logrus with the handful of levels and fields this
// core actually emits.
package logger

import (
	"github.com/sirupsen/logrus"
)

// Level mirrors logrus' severity levels so callers of this package never
// need to import logrus directly.
type Level uint8

const (
	// PanicLevel logs and then panics.
	PanicLevel Level = iota
	// FatalLevel logs and then terminates the process.
	FatalLevel
	// ErrorLevel reports a condition the caller should act on.
	ErrorLevel
	// WarnLevel reports a recoverable, best-effort failure.
	WarnLevel
	// InfoLevel reports a notable lifecycle event.
	InfoLevel
	// DebugLevel reports per-cycle detail, e.g. a single select() pass.
	DebugLevel
)

func (l Level) toLogrus() logrus.Level {
	switch l {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Fields attaches structured key-value context to a log entry.
type Fields map[string]any

// Logger is the minimal structured-logging contract the selector and
// socket packages depend on. A nil *Logger is valid and discards
// everything, so callers are never required to configure one.
type Logger struct {
	lg  *logrus.Logger
	lvl Level
}

// New returns a Logger that writes through logrus at the given minimum
// level.
func New(lvl Level) *Logger {
	lg := logrus.New()
	lg.SetLevel(lvl.toLogrus())
	return &Logger{lg: lg, lvl: lvl}
}

// Discard returns a Logger that drops every entry. Useful as a default
// when the application does not want selector/socket diagnostics.
func Discard() *Logger {
	lg := logrus.New()
	lg.SetOutput(discardWriter{})
	return &Logger{lg: lg}
}

// SetLevel changes the minimum level this logger emits.
func (l *Logger) SetLevel(lvl Level) {
	if l == nil {
		return
	}
	l.lvl = lvl
	l.lg.SetLevel(lvl.toLogrus())
}

// GetLevel returns the minimum level this logger emits.
func (l *Logger) GetLevel() Level {
	if l == nil {
		return PanicLevel
	}
	return l.lvl
}

func (l *Logger) entry(f Fields) *logrus.Entry {
	if len(f) == 0 {
		return logrus.NewEntry(l.lg)
	}
	return l.lg.WithFields(logrus.Fields(f))
}

// Debug logs a per-cycle diagnostic (e.g. one select() pass).
func (l *Logger) Debug(msg string, f Fields) {
	if l == nil {
		return
	}
	l.entry(f).Debug(msg)
}

// Info logs a lifecycle event (socket registered, connect resolved).
func (l *Logger) Info(msg string, f Fields) {
	if l == nil {
		return
	}
	l.entry(f).Info(msg)
}

// Warning logs a best-effort failure that was swallowed (e.g. SO_REUSEPORT
// unsupported on this platform).
func (l *Logger) Warning(msg string, f Fields) {
	if l == nil {
		return
	}
	l.entry(f).Warning(msg)
}

// Error logs a failure the caller should be aware of but that did not
// abort the call (e.g. a per-socket I/O error collapsed into the
// tri-valued contract).
func (l *Logger) Error(msg string, f Fields) {
	if l == nil {
		return
	}
	l.entry(f).Error(msg)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
