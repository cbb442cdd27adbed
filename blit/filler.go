// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"sync"

	"github.com/gogpu/winblit/internal/parallel"
	"github.com/gogpu/winblit/window"
)

// parallelThreshold is the pixel count below which a Filler fills inline.
const parallelThreshold = 64 * 1024

// Filler fills rectangles with rows split across a worker pool.
// Bands never overlap, so workers write disjoint byte ranges.
//
// A Filler is safe for concurrent use. Close releases the workers.
type Filler struct {
	pool *parallel.WorkerPool
}

// NewFiller creates a Filler with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewFiller(workers int) *Filler {
	return &Filler{pool: parallel.NewWorkerPool(workers)}
}

// Fill has the same contract as the package-level Fill.
func (f *Filler) Fill(buf *window.Buffer, r window.Rect, c Color) error {
	p, err := prepare(buf, r, c)
	if err != nil {
		return err
	}
	if r.Dx()*r.Dy() < parallelThreshold || f.pool.Workers() < 2 {
		return p.rows(r.Top, r.Bottom)
	}

	bands := parallel.Split(r.Top, r.Bottom, f.pool.Workers())
	var (
		mu       sync.Mutex
		firstErr error
	)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			if err := p.rows(b.Start, b.End); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}
	}
	f.pool.ExecuteAll(work)
	return firstErr
}

// Workers returns the number of pool workers.
func (f *Filler) Workers() int {
	return f.pool.Workers()
}

// Close stops the worker pool. Fill still works afterwards, inline.
func (f *Filler) Close() {
	f.pool.Close()
}
