// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/candidate-validation/dot/parachain/pvf"
	"github.com/go-playground/validator/v10"
	"github.com/naoina/toml"
)

const (
	DefaultExecuteWorkersMaxNum     = 2
	DefaultPrepareWorkersSoftMaxNum = 1
	DefaultPrepareWorkersHardMaxNum = 2
)

var (
	ErrInvalidWorkersNum     = errors.New("number of workers must be greater than zero")
	ErrPrepareWorkersSoftMax = errors.New("prepare workers soft max must not exceed the hard max")
	ErrMissingWorkerProgram  = errors.New("secure validator mode requires the worker program paths")
	ErrMissingArtifactsPath  = errors.New("artifacts cache path is required")
)

// Config is the configuration of the candidate validation subsystem
type Config struct {
	// ArtifactsCachePath is the directory prepared artifacts are stored in.
	ArtifactsCachePath string `toml:"artifacts-cache-path" validate:"required"`
	// NodeVersion is the version of the node. Artifacts of other versions are removed on start.
	NodeVersion string `toml:"node-version,omitempty"`
	// SecureValidatorMode enables the security features of the validation workers.
	SecureValidatorMode bool `toml:"secure-validator-mode"`
	// PrepareWorkerProgramPath is the path to the preparation worker binary.
	PrepareWorkerProgramPath string `toml:"prepare-worker-program-path,omitempty" validate:"required_if=SecureValidatorMode true"` //nolint:lll
	// ExecuteWorkerProgramPath is the path to the execution worker binary.
	ExecuteWorkerProgramPath string `toml:"execute-worker-program-path,omitempty" validate:"required_if=SecureValidatorMode true"` //nolint:lll
	// ExecuteWorkersMaxNum is the maximum number of concurrent executions.
	ExecuteWorkersMaxNum int `toml:"execute-workers-max-num" validate:"gt=0"`
	// PrepareWorkersHardMaxNum is the absolute maximum number of concurrent preparations.
	PrepareWorkersHardMaxNum int `toml:"prepare-workers-hard-max-num" validate:"gt=0"`
	// PrepareWorkersSoftMaxNum is the number of concurrent preparations normal priority jobs may use.
	PrepareWorkersSoftMaxNum int `toml:"prepare-workers-soft-max-num" validate:"gt=0,ltefield=PrepareWorkersHardMaxNum"` //nolint:lll
}

// DefaultConfig returns the default candidate validation configuration
func DefaultConfig() Config {
	return Config{
		ArtifactsCachePath:       filepath.Join(os.TempDir(), "gossamer", "pvf-artifacts"),
		ExecuteWorkersMaxNum:     DefaultExecuteWorkersMaxNum,
		PrepareWorkersSoftMaxNum: DefaultPrepareWorkersSoftMaxNum,
		PrepareWorkersHardMaxNum: DefaultPrepareWorkersHardMaxNum,
	}
}

// LoadConfig reads the toml configuration file at the given path on top of the default configuration
func LoadConfig(path string) (cfg Config, err error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("opening config file: %w", err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("closing config file: %w", closeErr)
		}
	}()

	cfg = DefaultConfig()
	if err = toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config file: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var configValidator = validator.New()

// Validate checks the configuration is usable
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// the first failing field is reported, in declaration order
	fieldErr := validationErrs[0]
	switch fieldErr.Tag() {
	case "required":
		return ErrMissingArtifactsPath
	case "required_if":
		return fmt.Errorf("%w: %s is empty", ErrMissingWorkerProgram, fieldErr.Field())
	case "gt":
		return fmt.Errorf("%w: %s is %v", ErrInvalidWorkersNum, fieldErr.Field(), fieldErr.Value())
	case "ltefield":
		return fmt.Errorf("%w: soft max %d, hard max %d", ErrPrepareWorkersSoftMax,
			c.PrepareWorkersSoftMaxNum, c.PrepareWorkersHardMaxNum)
	default:
		return fieldErr
	}
}

// pvfConfig returns the validation host configuration
func (c Config) pvfConfig() pvf.Config {
	return pvf.Config{
		ArtifactsCachePath:       c.ArtifactsCachePath,
		NodeVersion:              c.NodeVersion,
		SecureValidatorMode:      c.SecureValidatorMode,
		PrepareWorkerProgramPath: c.PrepareWorkerProgramPath,
		ExecuteWorkerProgramPath: c.ExecuteWorkerProgramPath,
		PrepareWorkersSoftMax:    c.PrepareWorkersSoftMaxNum,
		PrepareWorkersHardMax:    c.PrepareWorkersHardMaxNum,
		ExecuteWorkersMaxNum:     c.ExecuteWorkersMaxNum,
	}
}
