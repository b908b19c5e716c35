// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	candidatevalidation "github.com/ChainSafe/candidate-validation/dot/parachain/candidate-validation"
	parachaintypes "github.com/ChainSafe/candidate-validation/dot/parachain/types"
	"github.com/ChainSafe/candidate-validation/dot/parachain/util"
	"github.com/ChainSafe/candidate-validation/internal/log"
	"github.com/urfave/cli"
)

var errMissingFlag = errors.New("missing required flag")

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

var (
	checkConfigCommand = cli.Command{
		Name:        "check-config",
		Usage:       "Load and validate a configuration file",
		Flags:       []cli.Flag{ConfigFlag},
		Description: "Loads the configuration file on top of the defaults and prints the result.",
		Action:      checkConfig,
	}
	codeHashCommand = cli.Command{
		Name:        "code-hash",
		Usage:       "Print the hash and size of validation code",
		Flags:       []cli.Flag{CodeFlag},
		Description: "Hashes the code as stored on chain and checks it decompresses within the bomb limit.",
		Action:      codeHash,
	}
	pruneArtifactsCommand = cli.Command{
		Name:        "prune-artifacts",
		Usage:       "Remove prepared artifacts left by other node versions",
		Flags:       []cli.Flag{ConfigFlag},
		Description: "Starts and stops the validation host, which prunes the artifacts cache on start.",
		Action:      pruneArtifacts,
	}
)

// setupLogger sets up the global logger.
func setupLogger(ctx *cli.Context) error {
	var level log.Level
	if lvlToInt, err := strconv.Atoi(ctx.GlobalString(LogFlag.Name)); err == nil {
		level = log.Level(lvlToInt)
	} else if level, err = log.ParseLevel(ctx.GlobalString(LogFlag.Name)); err != nil {
		return err
	}

	log.Patch(
		log.SetWriter(os.Stdout),
		log.SetCallerFile(true),
		log.SetCallerLine(true),
		log.SetLevel(level),
	)
	return nil
}

func loadConfig(ctx *cli.Context) (cfg candidatevalidation.Config, err error) {
	path := ctx.String(ConfigFlag.Name)
	if path == "" {
		logger.Debug("no configuration file given, using defaults")
		return candidatevalidation.DefaultConfig(), nil
	}
	return candidatevalidation.LoadConfig(path)
}

func checkConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	_, _ = fmt.Fprintf(w, "artifacts cache path: %s\n", cfg.ArtifactsCachePath)
	_, _ = fmt.Fprintf(w, "secure validator mode: %t\n", cfg.SecureValidatorMode)
	_, _ = fmt.Fprintf(w, "execute workers: %d\n", cfg.ExecuteWorkersMaxNum)
	_, _ = fmt.Fprintf(w, "prepare workers: %d soft, %d hard\n",
		cfg.PrepareWorkersSoftMaxNum, cfg.PrepareWorkersHardMaxNum)
	return nil
}

func codeHash(ctx *cli.Context) error {
	path := ctx.String(CodeFlag.Name)
	if path == "" {
		return fmt.Errorf("%w: --%s", errMissingFlag, CodeFlag.Name)
	}

	blob, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("reading validation code: %w", err)
	}

	hash, err := parachaintypes.ValidationCode(blob).Hash()
	if err != nil {
		return fmt.Errorf("hashing validation code: %w", err)
	}

	raw, err := util.MaybeCompressedBlobDecompress(blob, util.ValidationCodeBombLimit)
	if err != nil {
		return fmt.Errorf("decompressing validation code: %w", err)
	}

	w := ctx.App.Writer
	_, _ = fmt.Fprintf(w, "code hash: %s\n", hash)
	_, _ = fmt.Fprintf(w, "compressed: %t\n", bytes.HasPrefix(blob, util.ZstdPrefix))
	_, _ = fmt.Fprintf(w, "size: %d bytes (%d decompressed)\n", len(blob), len(raw))
	return nil
}

func pruneArtifacts(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	cv, err := candidatevalidation.NewFromConfig(cfg, nil, nil, nil)
	if err != nil {
		return err
	}
	cv.Stop()

	logger.Infof("pruned artifacts cache at %s", cfg.ArtifactsCachePath)
	return nil
}
