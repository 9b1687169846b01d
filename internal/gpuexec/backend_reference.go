//go:build !opencl

// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/luxfi/phpmtseed/internal/config"
	"github.com/luxfi/phpmtseed/internal/query"
)

// referenceBackend evaluates the predicate kernel on the CPU, fanning
// one step's candidate seeds out across runtime.NumCPU() goroutines. It
// is the backend of every binary built without the "opencl" tag (an
// "opencl" build does not fall back to it when no GPU is found) and the
// backend every correctness test in this repo exercises, since it needs
// no hardware.
//
// This plays the same role backend_opencl.go's stub counterpart
// (gpu/memory_stub.go in the teacher) plays for CUDA: a portable
// fallback that keeps the package usable — here, fully usable, not just
// compilable — without accelerator hardware.
type referenceBackend struct {
	cfg     config.Tuning
	workers int
}

func newDefaultBackend(cfg config.Tuning) (Backend, error) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	return &referenceBackend{cfg: cfg, workers: workers}, nil
}

func (b *referenceBackend) Name() string {
	return fmt.Sprintf("reference (CPU, %d workers)", b.workers)
}

func (b *referenceBackend) Close() {}

// Dispatch partitions step's candidate seeds (spec.md §3: s mod Steps ==
// step) across b.workers goroutines. Each goroutine owns a private
// resultRing-compatible push into the shared ring — the only shared
// mutable state is resultRing's atomic counter, the same constraint
// spec.md §5 places on the GPU's invocations.
func (b *referenceBackend) Dispatch(step uint32, q query.Query) (DispatchResult, error) {
	perStep := uint64(b.cfg.Workgroups) * uint64(b.cfg.InvocationsPerWorkgroup)
	ring := newResultRing(b.cfg.OutputCapacity)

	var wg sync.WaitGroup
	chunk := (perStep + uint64(b.workers) - 1) / uint64(b.workers)

	for w := 0; w < b.workers; w++ {
		lo := uint64(w) * chunk
		hi := lo + chunk
		if hi > perStep {
			hi = perStep
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi uint64) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				seed := uint32(uint64(step) + uint64(b.cfg.Steps)*i)
				if evaluate(seed, q) {
					ring.push(seed)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	seeds, overflowed := ring.drain()
	if overflowed {
		return DispatchResult{}, ErrResultOverflow
	}
	return DispatchResult{Seeds: seeds}, nil
}
