// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"sync"
)

// Logger is a leveled logger safe for concurrent use.
// Child loggers share the mutex of their parent so lines
// written to the same writer never interleave.
type Logger struct {
	settings settings
	mutex    *sync.Mutex
}

// New creates a new logger with the options applied on top of the defaults.
func New(options ...Option) *Logger {
	s := defaultSettings()
	s.apply(newSettings(options))

	return &Logger{
		settings: s,
		mutex:    new(sync.Mutex),
	}
}

// New creates a child logger inheriting the settings of its parent,
// with the options applied on top of them.
func (l *Logger) New(options ...Option) *Logger {
	l.mutex.Lock()
	s := l.settings.clone()
	l.mutex.Unlock()

	s.apply(newSettings(options))

	return &Logger{
		settings: s,
		mutex:    l.mutex,
	}
}

// Patch applies the options to the logger. Context given replaces the
// existing context. Child loggers already created are not affected.
func (l *Logger) Patch(options ...Option) {
	patch := newSettings(options)

	l.mutex.Lock()
	defer l.mutex.Unlock()

	s := l.settings.clone()
	if len(patch.context) > 0 {
		s.context = nil
	}
	s.apply(patch)
	l.settings = s
}

// PatchLevel sets the level of the logger.
func (l *Logger) PatchLevel(level Level) {
	l.Patch(SetLevel(level))
}
