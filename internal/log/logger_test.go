// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC3339 format
const timePrefixRegex = `^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2}) `

func Test_New(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options        []Option
		expectedLogger *Logger
	}{
		"no_option": {
			expectedLogger: &Logger{
				settings: settings{
					writer: os.Stdout,
					level:  Info,
				},
				mutex: new(sync.Mutex),
			},
		},
		"all_options": {
			options: []Option{
				SetLevel(Trace),
				SetCallerFile(true),
				SetCallerLine(true),
				SetCallerFunc(true),
				SetColoured(true),
				SetWriter(io.Discard),
				AddContext("key1", "value1"),
				AddContext("key1", "value2"),
			},
			expectedLogger: &Logger{
				settings: settings{
					set: fieldWriter | fieldLevel | fieldColoured |
						fieldCallerFile | fieldCallerLine | fieldCallerFunc,
					writer:   io.Discard,
					level:    Trace,
					coloured: true,
					caller:   caller{file: true, line: true, function: true},
					context: []contextKeyValues{
						{key: "key1", values: []string{"value1", "value2"}},
					},
				},
				mutex: new(sync.Mutex),
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			logger := New(testCase.options...)

			assert.Equal(t, testCase.expectedLogger, logger)
		})
	}
}

func Test_Logger_New(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetLevel(Warn), AddContext("pkg", "parent"))
	child := parent.New(SetLevel(Debug), AddContext("module", "child"))

	assert.Same(t, parent.mutex, child.mutex)
	assert.Equal(t, Warn, parent.settings.level)
	assert.Equal(t, Debug, child.settings.level)
	assert.Equal(t, []contextKeyValues{
		{key: "pkg", values: []string{"parent"}},
		{key: "module", values: []string{"child"}},
	}, child.settings.context)

	child.Debugf("hello %d", 1)
	parent.Debug("not shown")

	output := buffer.String()
	assert.Regexp(t, regexp.MustCompile(timePrefixRegex+"DBUG hello 1\tpkg=parent module=child\n$"), output)
}

func Test_Logger_log(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		level       Level
		logLevel    Level
		s           string
		args        []interface{}
		context     []contextKeyValues
		outputRegex string
	}{
		"log_at_trace": {
			level:       Trace,
			logLevel:    Trace,
			s:           "some words",
			outputRegex: timePrefixRegex + "TRCE some words\n$",
		},
		"do_not_log_below_level": {
			level:       Debug,
			logLevel:    Trace,
			s:           "some words",
			outputRegex: "^$",
		},
		"format_string": {
			level:       Trace,
			logLevel:    Error,
			s:           "some %s",
			args:        []interface{}{"words"},
			outputRegex: timePrefixRegex + "EROR some words\n$",
		},
		"context": {
			level:    Info,
			logLevel: Warn,
			s:        "msg",
			context: []contextKeyValues{
				{key: "pkg", values: []string{"pvf", "host"}},
			},
			outputRegex: timePrefixRegex + "WARN msg\tpkg=pvf,host\n$",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := bytes.NewBuffer(nil)
			logger := &Logger{
				settings: settings{
					writer:  buffer,
					level:   testCase.level,
					context: testCase.context,
				},
				mutex: new(sync.Mutex),
			}

			logger.log(testCase.logLevel, testCase.s, testCase.args...)

			assert.Regexp(t, regexp.MustCompile(testCase.outputRegex), buffer.String())
		})
	}
}

func Test_Logger_Patch(t *testing.T) {
	t.Parallel()

	logger := New(SetWriter(io.Discard), SetLevel(Info), AddContext("pkg", "a"))
	logger.Patch(SetLevel(Error), AddContext("pkg", "b"))

	assert.Equal(t, Error, logger.settings.level)
	assert.Equal(t, []contextKeyValues{{key: "pkg", values: []string{"b"}}}, logger.settings.context)

	logger.PatchLevel(Trace)
	assert.Equal(t, Trace, logger.settings.level)
}

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, Debug, level)

	level, err = ParseLevel("EROR")
	require.NoError(t, err)
	assert.Equal(t, Error, level)

	level, err = ParseLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, Warn, level)

	_, err = ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrLevelNotRecognised)
}

func Test_Logger_New_doesNotShareContext(t *testing.T) {
	t.Parallel()

	parent := New(SetWriter(io.Discard), AddContext("pkg", "pvf"))
	first := parent.New(AddContext("pkg", "host"))
	second := parent.New(AddContext("pkg", "worker"))

	assert.Equal(t, []contextKeyValues{{key: "pkg", values: []string{"pvf"}}}, parent.settings.context)
	assert.Equal(t, []contextKeyValues{{key: "pkg", values: []string{"pvf", "host"}}}, first.settings.context)
	assert.Equal(t, []contextKeyValues{{key: "pkg", values: []string{"pvf", "worker"}}}, second.settings.context)
}

func Test_Logger_callerDetails(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	logger := New(SetWriter(buffer), SetCallerFile(true), SetCallerFunc(true))

	logger.Info("located")

	assert.Regexp(t, regexp.MustCompile(timePrefixRegex+
		"INFO located\tlogger_test.go:Test_Logger_callerDetails\n$"), buffer.String())
}
