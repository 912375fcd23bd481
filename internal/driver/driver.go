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

// Package driver implements MeTTaTron's embedding surface: a Driver owns
// one KB lineage and dispatches top-level forms to it, either silently in
// batch (Compile) or interactively (Run), plus a concurrent form of Run
// that fans independent requests out over a bounded worker pool.
package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/f1r3fly-io/mettatron/internal/eval"
	"github.com/f1r3fly-io/mettatron/internal/kb"
	"github.com/f1r3fly-io/mettatron/internal/pool"
	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Driver owns the live KB lineage for one program. It is safe for
// concurrent use: mu serializes the read-modify-write of kb across
// concurrent Run/Compile calls, the way any single shared database handle
// needs to be serialized across concurrent writers.
type Driver struct {
	log     hclog.Logger
	reducer *eval.Reducer
	cpu     *pool.CPUPool

	mu sync.Mutex
	kb *kb.KB
}

// New returns a Driver over a fresh, empty KB. log may be nil.
func New(log hclog.Logger, cpuPoolSize int) *Driver {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.Named("driver")
	return &Driver{
		log:     log,
		reducer: eval.New(log),
		cpu:     pool.NewCPUPool(cpuPoolSize),
		kb:      kb.New(log),
	}
}

// isBangRequest reports whether form is `(! EXPR)`, MeTTaTron's evaluation
// request marker: bang requests are reduced but never appended to the fact
// trie, unlike every other top-level form.
func isBangRequest(form value.Value) (value.Value, bool) {
	if !form.IsSExpr() || form.Len() != 2 {
		return value.Value{}, false
	}
	head, ok := form.Head()
	if !ok || !head.IsSymbol() || head.Name() != "!" {
		return value.Value{}, false
	}
	return form.Items()[1], true
}

// processTopLevel runs one top-level form against k, returning its results
// and the KB as mutated. Non-bang forms are additionally appended to the
// fact trie per result; `=`/`:`/`:<` forms produce no results so this
// append is a no-op for them, which is why no special case is needed for
// rule/type installation here.
func processTopLevel(ctx context.Context, r *eval.Reducer, k *kb.KB, form value.Value) ([]value.Value, *kb.KB, bool) {
	if inner, ok := isBangRequest(form); ok {
		results, next := r.Reduce(ctx, k, inner)
		return results, next, true
	}
	results, next := r.Reduce(ctx, k, form)
	for _, res := range results {
		next = next.AddFact(res)
	}
	return results, next, false
}

// Compile silently installs every form in forms: rule/type/fact installs
// happen in order, bang requests are evaluated for their side effects on
// the KB but their results are discarded, and any Error value surfacing
// from a non-bang form is folded into the returned *multierror.Error rather
// than stopping the run, matching go-multierror's batch-accumulation idiom.
func (d *Driver) Compile(ctx context.Context, forms []value.Value) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result *multierror.Error
	for i, form := range forms {
		results, next, isRequest := processTopLevel(ctx, d.reducer, d.kb, form)
		d.kb = next
		if isRequest {
			continue
		}
		for _, res := range results {
			if res.IsError() {
				result = multierror.Append(result, fmt.Errorf("form %d: %s", i, res.String()))
			}
		}
	}
	d.log.Debug("compiled batch", "forms", len(forms))
	if result == nil {
		return nil
	}
	return result
}

// Run evaluates one top-level form interactively, logging whether it
// installed something or produced evaluation results.
func (d *Driver) Run(ctx context.Context, form value.Value) []value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()

	results, next, isRequest := processTopLevel(ctx, d.reducer, d.kb, form)
	d.kb = next
	if isRequest {
		d.log.Info("evaluated", "form", form.String(), "results", len(results))
	} else {
		d.log.Info("installed", "form", form.String())
	}
	return results
}

// Snapshot returns a cheap, independent clone of the Driver's current KB,
// for callers that want to inspect or speculate against it without
// serializing on mu for the duration.
func (d *Driver) Snapshot() *kb.KB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.kb.Clone()
}

// RunConcurrent evaluates every form in forms concurrently against a shared
// read-only snapshot of the KB taken at call time: an async-coordination
// group fans the requests out, and a CPU-bound pool bounds how many
// reductions actually run at once. Each form is evaluated purely with
// respect to that snapshot -- none of their individual KB mutations are
// merged back into the Driver's live KB, so speculative concurrent
// evaluation never lets one request's installs leak into another's view.
// Results are returned in the same order as forms.
func (d *Driver) RunConcurrent(ctx context.Context, forms []value.Value) ([][]value.Value, error) {
	base := d.Snapshot()
	out := make([][]value.Value, len(forms))

	g, gctx := pool.NewAsyncGroup(ctx)
	for i, form := range forms {
		i, form := i, form
		g.Go(func() error {
			return d.cpu.Go(gctx, func() error {
				inner := form
				if stripped, ok := isBangRequest(form); ok {
					inner = stripped
				}
				results, _ := d.reducer.Reduce(gctx, base, inner)
				out[i] = results
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
