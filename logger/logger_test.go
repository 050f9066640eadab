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

package logger_test

import (
	"testing"

	"github.com/bibhas2/velar/logger"
)

func TestNilLoggerIsSafe(t *testing.T) {
	var l *logger.Logger
	l.Debug("no-op", nil)
	l.Info("no-op", logger.Fields{"k": "v"})
	l.Warning("no-op", nil)
	l.Error("no-op", nil)

	if l.GetLevel() != logger.PanicLevel {
		t.Fatalf("nil logger GetLevel() = %v, want PanicLevel", l.GetLevel())
	}
}

func TestSetLevelRoundTrip(t *testing.T) {
	l := logger.New(logger.InfoLevel)
	if l.GetLevel() != logger.InfoLevel {
		t.Fatalf("GetLevel() = %v, want InfoLevel", l.GetLevel())
	}
	l.SetLevel(logger.DebugLevel)
	if l.GetLevel() != logger.DebugLevel {
		t.Fatalf("GetLevel() = %v, want DebugLevel", l.GetLevel())
	}
}

func TestDiscardDoesNotPanic(t *testing.T) {
	l := logger.Discard()
	l.Debug("hello", logger.Fields{"n": 1})
	l.Error("boom", nil)
}
