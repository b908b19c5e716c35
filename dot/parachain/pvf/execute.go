// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	parachainruntime "github.com/ChainSafe/candidate-validation/dot/parachain/runtime"
	"github.com/gammazero/deque"
)

type executeResult struct {
	result *parachainruntime.ValidationResult
	err    error
}

type executeJob struct {
	ctx      context.Context
	artifact *Artifact
	params   []byte
	timeout  time.Duration
	resultCh chan executeResult
}

// executeQueue holds pending execution jobs, one queue per priority. Workers always take
// critical jobs before normal ones.
type executeQueue struct {
	mtx      sync.Mutex
	cond     *sync.Cond
	critical *deque.Deque[*executeJob]
	normal   *deque.Deque[*executeJob]
	stopped  bool
}

func newExecuteQueue() *executeQueue {
	q := &executeQueue{
		critical: deque.New[*executeJob](),
		normal:   deque.New[*executeJob](),
	}
	q.cond = sync.NewCond(&q.mtx)
	return q
}

// push enqueues the job, returning false if the queue is stopped.
func (q *executeQueue) push(job *executeJob, priority Priority) bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.stopped {
		return false
	}

	if priority == PriorityCritical {
		q.critical.PushBack(job)
	} else {
		q.normal.PushBack(job)
	}
	executeQueueGauge.WithLabelValues(priority.String()).Inc()
	q.cond.Signal()
	return true
}

// pop blocks until a job is available. It returns nil once the queue is stopped.
func (q *executeQueue) pop() *executeJob {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	for q.critical.Len() == 0 && q.normal.Len() == 0 && !q.stopped {
		q.cond.Wait()
	}

	switch {
	case q.stopped:
		return nil
	case q.critical.Len() > 0:
		executeQueueGauge.WithLabelValues(PriorityCritical.String()).Dec()
		return q.critical.PopFront()
	default:
		executeQueueGauge.WithLabelValues(PriorityNormal.String()).Dec()
		return q.normal.PopFront()
	}
}

// stop wakes all workers and returns the jobs still queued.
func (q *executeQueue) stop() []*executeJob {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.stopped = true
	q.cond.Broadcast()

	pending := make([]*executeJob, 0, q.critical.Len()+q.normal.Len())
	for q.critical.Len() > 0 {
		executeQueueGauge.WithLabelValues(PriorityCritical.String()).Dec()
		pending = append(pending, q.critical.PopFront())
	}
	for q.normal.Len() > 0 {
		executeQueueGauge.WithLabelValues(PriorityNormal.String()).Dec()
		pending = append(pending, q.normal.PopFront())
	}
	return pending
}

type worker struct {
	id        int
	engine    Engine
	queue     *executeQueue
	artifacts *artifacts
}

func (w *worker) run(wg *sync.WaitGroup) {
	defer func() {
		logger.Debugf("[STOPPED] execute worker %d", w.id)
		wg.Done()
	}()

	for {
		job := w.queue.pop()
		if job == nil {
			return
		}
		job.resultCh <- w.executeRequest(job)
	}
}

func (w *worker) executeRequest(job *executeJob) executeResult {
	if err := job.ctx.Err(); err != nil {
		return executeResult{err: &InternalValidationError{Err: err}}
	}

	logger.Debugf("[EXECUTING] worker %d artifact %s", w.id, job.artifact.ID)

	execCtx, cancel := context.WithTimeout(job.ctx, job.timeout)
	defer cancel()

	done := make(chan executeResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- executeResult{err: &PossiblyInvalidError{
					Kind: AmbiguousWorkerDeath,
					Msg:  fmt.Sprintf("%v", r),
				}}
			}
		}()

		result, err := w.engine.Execute(execCtx, *job.artifact, job.params)
		done <- executeResult{result: result, err: err}
	}()

	var res executeResult
	select {
	case res = <-done:
	case <-execCtx.Done():
		res = executeResult{err: execCtx.Err()}
	}

	res.err = w.classify(job, execCtx, res)
	if res.err != nil {
		res.result = nil
	}
	logger.Debugf("[RESULT] worker %d artifact %s, error: %v", w.id, job.artifact.ID, res.err)
	return res
}

// classify maps the outcome of an engine execution to the host error taxonomy.
func (w *worker) classify(job *executeJob, execCtx context.Context, res executeResult) error {
	err := res.err
	if err == nil {
		if res.result == nil {
			return &PossiblyInvalidError{Kind: JobErr, Msg: "engine returned no result"}
		}
		return nil
	}

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) && job.ctx.Err() == nil {
		return &InvalidCandidateError{Kind: HardTimeout}
	}
	if job.ctx.Err() != nil {
		return &InternalValidationError{Err: job.ctx.Err()}
	}

	var (
		invalidErr  *InvalidCandidateError
		possiblyErr *PossiblyInvalidError
		internalErr *InternalValidationError
	)
	switch {
	case errors.As(err, &possiblyErr):
		if possiblyErr.Kind == RuntimeConstructionErr {
			// jobs already queued on the same file can still fail once before the retry re-prepares it
			logger.Warnf("runtime construction failed for artifact %s, evicting it", job.artifact.ID)
			w.artifacts.removeIfCurrent(job.artifact)
		}
		return possiblyErr
	case errors.As(err, &invalidErr):
		return invalidErr
	case errors.As(err, &internalErr):
		return internalErr
	default:
		return &InvalidCandidateError{Kind: WorkerReportedInvalid, Msg: err.Error()}
	}
}
