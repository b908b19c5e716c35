// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
)

// Option modifies the settings of a logger.
type Option func(s *settings)

// SetLevel sets the minimum level logged, Info by default.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = level
		s.set |= fieldLevel
	}
}

// SetCallerFile toggles logging the caller file name.
func SetCallerFile(enabled bool) Option {
	return func(s *settings) {
		s.caller.file = enabled
		s.set |= fieldCallerFile
	}
}

// SetCallerLine toggles logging the caller line number.
func SetCallerLine(enabled bool) Option {
	return func(s *settings) {
		s.caller.line = enabled
		s.set |= fieldCallerLine
	}
}

// SetCallerFunc toggles logging the caller function name.
func SetCallerFunc(enabled bool) Option {
	return func(s *settings) {
		s.caller.function = enabled
		s.set |= fieldCallerFunc
	}
}

// SetColoured toggles colouring the level.
func SetColoured(enabled bool) Option {
	return func(s *settings) {
		s.coloured = enabled
		s.set |= fieldColoured
	}
}

// SetWriter sets the writer the logger writes to, os.Stdout by default.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
		s.set |= fieldWriter
	}
}

// AddContext adds a key value pair printed with every line. Values of a key
// already present are appended to it.
func AddContext(key, value string) Option {
	return func(s *settings) {
		s.context = addContextValues(s.context, key, value)
	}
}
