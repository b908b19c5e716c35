// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	"github.com/ChainSafe/candidate-validation/internal/log"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "pvf"))

const defaultArtifactsCacheSize = 256

// Engine prepares and executes PVFs. It is the sandboxed part of the validation host.
type Engine interface {
	// Prepare compiles the code into an artifact. A *PrepareError describes why the code
	// could not be prepared; any other error is treated as a deterministic preparation failure.
	Prepare(ctx context.Context, pvf *PvfPrepData) ([]byte, error)
	// Execute runs validate_block of the prepared artifact with the SCALE encoded validation
	// parameters. *InvalidCandidateError, *PossiblyInvalidError and *InternalValidationError are
	// passed through to the caller; any other error means the candidate was found invalid.
	Execute(ctx context.Context, artifact Artifact, params []byte) (*parachainruntime.ValidationResult, error)
}

// Config is the configuration of the validation host.
type Config struct {
	ArtifactsCachePath       string
	NodeVersion              string
	SecureValidatorMode      bool
	PrepareWorkerProgramPath string
	ExecuteWorkerProgramPath string
	PrepareWorkersSoftMax    int
	PrepareWorkersHardMax    int
	ExecuteWorkersMaxNum     int
	ArtifactsCacheSize       int
}

// Host is the PVF validation host: it prepares PVFs into cached artifacts and executes
// candidates with them.
type Host struct {
	config Config
	engine Engine

	artifacts    *artifacts
	preparePool  *preparePool
	executeQueue *executeQueue

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mtx     sync.RWMutex
	stopped bool
}

// NewHost creates a validation host. It must be started before use.
func NewHost(config Config, engine Engine) (*Host, error) {
	cacheSize := config.ArtifactsCacheSize
	if cacheSize <= 0 {
		cacheSize = defaultArtifactsCacheSize
	}

	if config.PrepareWorkersSoftMax <= 0 {
		config.PrepareWorkersSoftMax = 1
	}
	if config.PrepareWorkersHardMax < config.PrepareWorkersSoftMax {
		config.PrepareWorkersHardMax = config.PrepareWorkersSoftMax
	}
	if config.ExecuteWorkersMaxNum <= 0 {
		config.ExecuteWorkersMaxNum = 1
	}

	artifacts, err := newArtifacts(config.ArtifactsCachePath, config.NodeVersion, cacheSize)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Host{
		config:       config,
		engine:       engine,
		artifacts:    artifacts,
		preparePool:  newPreparePool(config.PrepareWorkersSoftMax, config.PrepareWorkersHardMax),
		executeQueue: newExecuteQueue(),
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Start prepares the artifacts cache directory, checks the worker binaries and starts
// the execute workers.
func (h *Host) Start() error {
	logger.Debug("starting validation host")

	for _, path := range []string{h.config.PrepareWorkerProgramPath, h.config.ExecuteWorkerProgramPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("checking worker program %s: %w", filepath.Base(path), err)
		}
	}

	err := h.artifacts.prune()
	if err != nil {
		return err
	}

	for i := 0; i < h.config.ExecuteWorkersMaxNum; i++ {
		w := &worker{
			id:        i,
			engine:    h.engine,
			queue:     h.executeQueue,
			artifacts: h.artifacts,
		}
		h.wg.Add(1)
		go w.run(&h.wg)
	}
	return nil
}

// Stop stops the execute workers and background preparations. Queued requests fail
// with an internal error.
func (h *Host) Stop() {
	h.mtx.Lock()
	if h.stopped {
		h.mtx.Unlock()
		return
	}
	h.stopped = true
	h.mtx.Unlock()

	h.cancel()
	for _, job := range h.executeQueue.stop() {
		job.resultCh <- executeResult{err: &InternalValidationError{Err: ErrHostStopped}}
	}
	h.wg.Wait()
	logger.Debug("validation host stopped")
}

func (h *Host) isStopped() bool {
	h.mtx.RLock()
	defer h.mtx.RUnlock()
	return h.stopped
}

// ValidateCandidate prepares the PVF if needed and executes the candidate with it.
func (h *Host) ValidateCandidate(ctx context.Context, pvf *PvfPrepData, execTimeout time.Duration,
	params []byte, priority Priority) (*parachainruntime.ValidationResult, error) {
	if h.isStopped() {
		return nil, &InternalValidationError{Err: ErrHostStopped}
	}

	artifact, err := h.getOrPrepare(ctx, pvf, priority)
	if err != nil {
		return nil, NewValidationErrorFromPrepare(err)
	}

	job := &executeJob{
		ctx:      ctx,
		artifact: artifact,
		params:   params,
		timeout:  execTimeout,
		resultCh: make(chan executeResult, 1),
	}
	if !h.executeQueue.push(job, priority) {
		return nil, &InternalValidationError{Err: ErrHostStopped}
	}

	start := time.Now()
	select {
	case res := <-job.resultCh:
		executionTime.Observe(time.Since(start).Seconds())
		return res.result, res.err
	case <-ctx.Done():
		return nil, &InternalValidationError{Err: ctx.Err()}
	}
}

// PrecheckPvF prepares the PVF, returning the preparation error if it fails.
func (h *Host) PrecheckPvF(ctx context.Context, pvf *PvfPrepData) error {
	if h.isStopped() {
		return &InternalValidationError{Err: ErrHostStopped}
	}

	_, err := h.getOrPrepare(ctx, pvf, PriorityNormal)
	return err
}

// HeadsUp starts preparing the PVFs in the background so that they are ready when
// candidates using them arrive.
func (h *Host) HeadsUp(pvfs []*PvfPrepData) error {
	h.mtx.RLock()
	defer h.mtx.RUnlock()
	if h.stopped {
		return &InternalValidationError{Err: ErrHostStopped}
	}

	for _, pvf := range pvfs {
		if h.artifacts.contains(pvf.ArtifactID()) {
			continue
		}

		h.wg.Add(1)
		go func(pvf *PvfPrepData) {
			defer h.wg.Done()
			_, err := h.getOrPrepare(h.ctx, pvf, PriorityNormal)
			if err != nil {
				logger.Warnf("preparing pvf %s ahead of time: %s", pvf.CodeHash(), err)
			}
		}(pvf)
	}
	return nil
}

func (h *Host) getOrPrepare(ctx context.Context, pvf *PvfPrepData, priority Priority) (*Artifact, error) {
	id := pvf.ArtifactID()
	return h.artifacts.getOrPrepare(ctx, id, func() (*Artifact, error) {
		// detached from ctx so waiters sharing this preparation are not cancelled with its first caller
		return h.prepare(pvf, priority)
	})
}

// prepare runs the engine preparation under the preparation timeout and writes the artifact
// to the cache directory. It runs under the host context so a preparation shared by several
// requests is not cancelled with the first of them.
func (h *Host) prepare(pvf *PvfPrepData, priority Priority) (artifact *Artifact, err error) {
	defer func() {
		if err != nil {
			preparationsCounter.WithLabelValues("failed").Inc()
		} else {
			preparationsCounter.WithLabelValues("succeeded").Inc()
		}
	}()

	release, err := h.preparePool.acquire(h.ctx, priority)
	if err != nil {
		return nil, &InternalValidationError{Err: err}
	}
	defer release()

	ctx, cancel := context.WithTimeout(h.ctx, pvf.PrepTimeout())
	defer cancel()

	type prepared struct {
		blob []byte
		err  error
	}
	done := make(chan prepared, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- prepared{err: &PrepareError{Kind: JobDied, Msg: fmt.Sprintf("%v", r)}}
			}
		}()
		blob, err := h.engine.Prepare(ctx, pvf)
		done <- prepared{blob: blob, err: err}
	}()

	var res prepared
	select {
	case res = <-done:
	case <-ctx.Done():
		res = prepared{err: ctx.Err()}
	}
	preparationTime.Observe(time.Since(start).Seconds())

	if res.err != nil {
		var prepareErr *PrepareError
		switch {
		case errors.As(res.err, &prepareErr):
			return nil, prepareErr
		case errors.Is(ctx.Err(), context.DeadlineExceeded) && h.ctx.Err() == nil:
			return nil, &PrepareError{Kind: TimedOut}
		case h.ctx.Err() != nil:
			return nil, &InternalValidationError{Err: ErrHostStopped}
		default:
			return nil, &PrepareError{Kind: Preparation, Msg: res.err.Error()}
		}
	}

	id := pvf.ArtifactID()
	path := h.artifacts.artifactPath(id)
	err = os.WriteFile(path, res.blob, 0o600)
	if err != nil {
		return nil, &PrepareError{Kind: IoErr, Msg: err.Error()}
	}

	logger.Debugf("prepared artifact %s in %s", id, time.Since(start))
	return &Artifact{
		ID:   id,
		Path: path,
		Size: len(res.blob),
	}, nil
}
