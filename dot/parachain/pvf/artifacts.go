// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pvf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const artifactPrefix = "wasmtime"

// Artifact is a prepared PVF stored on disk.
type Artifact struct {
	ID   ArtifactID
	Path string
	Size int
}

type preparation struct {
	done     chan struct{}
	artifact *Artifact
	err      error
}

// artifacts is the cache of prepared artifacts. Concurrent requests for the same
// artifact share a single preparation.
type artifacts struct {
	mtx       sync.Mutex
	cache     *lru.Cache[ArtifactID, *Artifact]
	preparing map[ArtifactID]*preparation

	cachePath   string
	nodeVersion string
}

func newArtifacts(cachePath, nodeVersion string, size int) (*artifacts, error) {
	cache, err := lru.NewWithEvict[ArtifactID, *Artifact](size, func(id ArtifactID, artifact *Artifact) {
		artifactsGauge.Dec()
		err := os.Remove(artifact.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("removing artifact %s: %s", id, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("creating artifacts cache: %w", err)
	}

	return &artifacts{
		cache:       cache,
		preparing:   make(map[ArtifactID]*preparation),
		cachePath:   cachePath,
		nodeVersion: nodeVersion,
	}, nil
}

func (a *artifacts) versionPrefix() string {
	return fmt.Sprintf("%s_%s_", artifactPrefix, a.nodeVersion)
}

func (a *artifacts) artifactPath(id ArtifactID) string {
	return filepath.Join(a.cachePath, a.versionPrefix()+id.String()+".pvf")
}

// prune creates the cache directory and removes every file in it that was not written
// by this node version. Nothing is removed when no node version is set.
func (a *artifacts) prune() error {
	err := os.MkdirAll(a.cachePath, 0o700)
	if err != nil {
		return fmt.Errorf("creating artifacts cache directory: %w", err)
	}

	// without a node version every artifact is treated as current
	if a.nodeVersion == "" {
		logger.Debugf("no node version set, keeping existing artifacts in %s", a.cachePath)
		return nil
	}

	entries, err := os.ReadDir(a.cachePath)
	if err != nil {
		return fmt.Errorf("reading artifacts cache directory: %w", err)
	}

	prefix := a.versionPrefix()
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		path := filepath.Join(a.cachePath, entry.Name())
		logger.Debugf("removing stale artifact %s", path)
		err = os.Remove(path)
		if err != nil {
			return fmt.Errorf("removing stale artifact: %w", err)
		}
	}
	return nil
}

func (a *artifacts) contains(id ArtifactID) bool {
	return a.cache.Contains(id)
}

// getOrPrepare returns the cached artifact, or runs prepare, or waits for the preparation
// already in progress for the same artifact.
func (a *artifacts) getOrPrepare(ctx context.Context, id ArtifactID,
	prepare func() (*Artifact, error)) (*Artifact, error) {
	a.mtx.Lock()
	if artifact, ok := a.cache.Get(id); ok {
		a.mtx.Unlock()
		return artifact, nil
	}

	p, ok := a.preparing[id]
	if !ok {
		p = &preparation{done: make(chan struct{})}
		a.preparing[id] = p
		a.mtx.Unlock()

		artifact, err := prepare()

		a.mtx.Lock()
		if err == nil {
			a.cache.Add(id, artifact)
			artifactsGauge.Inc()
		}
		p.artifact, p.err = artifact, err
		delete(a.preparing, id)
		close(p.done)
		a.mtx.Unlock()
		return artifact, err
	}
	a.mtx.Unlock()

	select {
	case <-p.done:
		return p.artifact, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// removeIfCurrent drops the artifact from the cache and deletes its file, unless it was
// already replaced by a newer preparation.
func (a *artifacts) removeIfCurrent(artifact *Artifact) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	cached, ok := a.cache.Peek(artifact.ID)
	if !ok || cached != artifact {
		return
	}
	a.cache.Remove(artifact.ID)
}

func (a *artifacts) len() int {
	return a.cache.Len()
}
