// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import "github.com/urfave/cli"

var (
	// LogFlag global log level
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Global log level. Supports levels crit (silent), eror, warn, info, dbug and trce (trace)",
		Value: "info",
	}
	// ConfigFlag toml configuration file of the subsystem
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file of the candidate validation subsystem",
	}
	// CodeFlag file holding validation code, compressed or not
	CodeFlag = cli.StringFlag{
		Name:  "code",
		Usage: "File holding the validation code, as stored on chain (zstd compressed or raw)",
	}
)
