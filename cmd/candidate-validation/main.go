// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "candidate-validation"
	app.Usage = "Inspect and maintain the candidate validation subsystem"
	app.HideVersion = true
	app.Flags = []cli.Flag{LogFlag}
	app.Before = setupLogger
	app.Commands = []cli.Command{
		checkConfigCommand,
		codeHashCommand,
		pruneArtifactsCommand,
	}
	return app
}
