// SPDX-License-Identifier: BSD-3-Clause

// Package gpuexec implements spec.md's GPU session (§4.6), search driver
// (§4.3), predicate kernel (§4.2) and result ring (§4.4).
//
// A Session is acquired once (device/adapter selection, shader
// compilation, pipeline and bind-group-layout construction) and then
// reused across every one of the 256 per-step dispatches a full search
// performs — mirroring wgpu's "prepare once, execute many times" idiom
// that the system this tool reimplements (a Rust/wgpu compute-shader
// seed cracker) is built around.
//
// Two backends implement the Backend interface below: a build-tag-gated
// cgo/OpenCL backend (backend_opencl.go, build tag "opencl") that really
// dispatches the predicate kernel on a GPU, and a pure-Go
// goroutine-parallel reference backend (backend_reference.go, the
// default) that evaluates the identical predicate on the CPU. The
// reference backend exists so the search is correct and testable on any
// machine, with or without a GPU — the same role gpu/memory_stub.go
// plays for the teacher's CUDA backend.
package gpuexec

import (
	"fmt"

	"github.com/luxfi/phpmtseed/internal/config"
	"github.com/luxfi/phpmtseed/internal/diag"
	"github.com/luxfi/phpmtseed/internal/query"
)

// StepCount is the number of congruence classes modulo Steps that
// partition the 32-bit seed space (spec.md §3, "Step").
const StepCount = 256

// OutputCapacity is the number of 32-bit words in the result-ring output
// buffer, including the length-prefix word (spec.md §3's output buffer
// layout).
const OutputCapacity = 1000

// ErrAcceleratorUnavailable is returned (wrapped) by NewSession when the
// OpenCL backend finds no usable compute device at startup. It is fatal:
// spec.md §7 prescribes no retry.
var ErrAcceleratorUnavailable = fmt.Errorf("gpuexec: no usable compute accelerator")

// ErrResultOverflow is returned when a single dispatch reports more
// matches than the configured output capacity (config.Tuning's
// OutputCapacity) can hold (spec.md §3/§4.4/§7).
var ErrResultOverflow = fmt.Errorf("gpuexec: dispatch result overflowed the output buffer")

// DispatchResult is one step's outcome: the matching seeds found, in
// arrival order (spec.md §4.4 — nondeterministic within a step, but
// duplicate-free because steps partition the seed space disjointly).
type DispatchResult struct {
	Seeds []uint32
}

// Backend dispatches the predicate kernel (spec.md §4.2) over one step's
// worth of candidate seeds. Implementations own their own device/queue
// state; Session just sequences calls to them.
type Backend interface {
	// Name identifies the backend for the startup banner, e.g.
	// "OpenCL (NVIDIA GeForce RTX 4090)" or "reference (CPU, 16 workers)".
	Name() string
	// Dispatch runs the predicate kernel for every candidate seed in
	// step's congruence class (spec.md §3: s mod StepCount == step) and
	// returns every seed whose outputs matched q. It returns
	// ErrResultOverflow if the dispatch's internal result ring exceeded
	// the configured output capacity.
	Dispatch(step uint32, q query.Query) (DispatchResult, error)
	// Close releases backend resources (device, queue, compiled
	// pipeline). Safe to call once after the last Dispatch.
	Close()
}

// Session is the GPU session of spec.md §4.6: everything that is
// acquired once and reused across all StepCount dispatches of a search.
type Session struct {
	cfg     config.Tuning
	backend Backend
}

// NewSession acquires a Backend (the OpenCL backend in a build with the
// "opencl" tag, the pure-Go reference backend otherwise — see
// newDefaultBackend in backend_opencl.go/backend_reference.go; there is
// no runtime fallback, so an OpenCL build without a usable GPU returns
// an error) and prints the one-line adapter banner spec.md §6 requires
// at startup.
func NewSession(cfg config.Tuning) (*Session, error) {
	backend, err := newDefaultBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("gpuexec: acquire backend: %w", err)
	}

	fmt.Printf("Running on Accelerator: %s\n", backend.Name())
	diag.Logf("session: tuning=%+v", cfg)

	return &Session{cfg: cfg, backend: backend}, nil
}

// Close releases the underlying backend.
func (s *Session) Close() {
	s.backend.Close()
}

// Dispatch runs one step's predicate-kernel invocation. It is the host
// half of spec.md §4.3's per-step loop: build input, dispatch, copy
// output, check overflow.
func (s *Session) Dispatch(step uint32, q query.Query) (DispatchResult, error) {
	if step >= StepCount {
		return DispatchResult{}, fmt.Errorf("gpuexec: step %d out of range [0, %d)", step, StepCount)
	}
	return s.backend.Dispatch(step, q)
}
