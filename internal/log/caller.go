// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// callerDepth skips format, Logger.log and the exported logging method.
const callerDepth = 3

type caller struct {
	file     bool
	line     bool
	function bool
}

// format returns the caller details enabled, joined with colons,
// for example "host.go:L42:ValidateCandidate".
func (c caller) format(depth int) string {
	if !c.file && !c.line && !c.function {
		return ""
	}

	pc, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "error"
	}

	fields := make([]string, 0, 3)
	if c.file {
		fields = append(fields, filepath.Base(file))
	}
	if c.line {
		fields = append(fields, "L"+strconv.Itoa(line))
	}
	if c.function {
		if details := runtime.FuncForPC(pc); details != nil {
			fields = append(fields, strings.TrimPrefix(filepath.Ext(details.Name()), "."))
		}
	}
	return strings.Join(fields, ":")
}
