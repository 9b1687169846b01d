// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

import "sync/atomic"

// resultRing reproduces the semantics of spec.md §3/§4.4's output
// buffer: a single atomic counter (the length prefix, "word 0") that
// writers reserve a slot in before writing, plus a fixed-capacity slice
// to hold the seeds themselves. The reference backend builds one of
// these per dispatch; the cgo/OpenCL backend does not use it, but its
// GPU-side output buffer follows the same layout (word 0 the count,
// then the seeds).
//
// Reservation past capacity still increments the counter (so overflow
// is visible to the reader) but the write past the slice bound is
// suppressed — identical to the "the counter still increments" rule in
// spec.md §4.2.
type resultRing struct {
	capacity uint32 // total words, including the length prefix
	count    atomic.Uint32
	seeds    []uint32 // len == capacity-1, indexed by reserved slot
}

func newResultRing(capacity uint32) *resultRing {
	if capacity < 1 {
		capacity = 1
	}
	return &resultRing{
		capacity: capacity,
		seeds:    make([]uint32, capacity-1),
	}
}

// push reserves the next slot and records seed if it fits. Safe for
// concurrent use by many goroutines, mirroring the GPU-side atomic add.
func (r *resultRing) push(seed uint32) {
	slot := r.count.Add(1) - 1
	if slot < uint32(len(r.seeds)) {
		r.seeds[slot] = seed
	}
}

// drain reads word 0 and returns (seeds, overflowed). overflowed is
// true when the reservation counter exceeded the buffer's data
// capacity, matching spec.md §3's "1 + word0 > 1000" overflow check.
func (r *resultRing) drain() (seeds []uint32, overflowed bool) {
	n := r.count.Load()
	if n > uint32(len(r.seeds)) {
		return nil, true
	}
	return append([]uint32(nil), r.seeds[:n]...), false
}
