// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

// field marks a setting explicitly given by an option.
type field uint8

const (
	fieldWriter field = 1 << iota
	fieldLevel
	fieldColoured
	fieldCallerFile
	fieldCallerLine
	fieldCallerFunc
)

type contextKeyValues struct {
	key    string
	values []string
}

type settings struct {
	set      field
	writer   io.Writer
	level    Level
	coloured bool
	caller   caller
	context  []contextKeyValues
}

func defaultSettings() settings {
	return settings{
		writer: os.Stdout,
		level:  Info,
	}
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// clone returns a copy of the settings not sharing the context slices.
func (s settings) clone() settings {
	cloned := s
	cloned.context = appendContext(nil, s.context)
	return cloned
}

// apply overrides the receiver with the fields set in other, and appends
// the context values of other.
func (s *settings) apply(other settings) {
	if other.set&fieldWriter != 0 {
		s.writer = other.writer
	}
	if other.set&fieldLevel != 0 {
		s.level = other.level
	}
	if other.set&fieldColoured != 0 {
		s.coloured = other.coloured
	}
	if other.set&fieldCallerFile != 0 {
		s.caller.file = other.caller.file
	}
	if other.set&fieldCallerLine != 0 {
		s.caller.line = other.caller.line
	}
	if other.set&fieldCallerFunc != 0 {
		s.caller.function = other.caller.function
	}
	s.set |= other.set
	s.context = appendContext(s.context, other.context)
}

// appendContext appends the values of src to dst, merging values of keys present in both.
func appendContext(dst, src []contextKeyValues) []contextKeyValues {
	for _, kvs := range src {
		dst = addContextValues(dst, kvs.key, kvs.values...)
	}
	return dst
}

func addContextValues(context []contextKeyValues, key string, values ...string) []contextKeyValues {
	for i := range context {
		if context[i].key == key {
			context[i].values = append(context[i].values, values...)
			return context
		}
	}
	return append(context, contextKeyValues{key: key, values: append([]string(nil), values...)})
}
