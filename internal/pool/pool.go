// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pool implements two worker pools: a small async-coordination pool
// (sized to logical CPU count) that fans independent top-level requests
// out, and a configurable CPU-bound reduction pool that the reducer
// actually runs on. Both are built on golang.org/x/sync.
package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CPUPool bounds concurrent reduction work to a configured weight, so that
// independent bang-requests may be dispatched concurrently against shared
// KB state without oversubscribing the machine.
type CPUPool struct {
	sem *semaphore.Weighted
	n   int64
}

// NewCPUPool returns a pool sized to n concurrent reductions. n <= 0
// defaults to the number of logical CPUs, a throughput-oriented default
// for a CPU-bound pool.
func NewCPUPool(n int) *CPUPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &CPUPool{sem: semaphore.NewWeighted(int64(n)), n: int64(n)}
}

// Go runs fn once a slot is free, blocking until one is or ctx is done.
func (p *CPUPool) Go(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn()
}

// Size reports the pool's configured concurrency.
func (p *CPUPool) Size() int { return int(p.n) }

// NewAsyncGroup returns the small coordination pool: one errgroup.Group per
// batch of independent top-level requests, capped at logical CPU count --
// deliberately smaller and separate from the CPU-bound reduction pool
// above, which is sized independently for the actual reduction work.
func NewAsyncGroup(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	return g, gctx
}
