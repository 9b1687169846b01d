// SPDX-License-Identifier: BSD-3-Clause

// Package query turns a flat slice of unsigned 32-bit CLI tokens into a
// canonical, validated sequence of observation slots — spec.md's §3 data
// model and §4.5 argument normalizer/linter.
package query

import "errors"

// MaxRangeValue is the largest value PHP's rand_range can be asked to
// produce; mt_rand's output is a 31-bit signed integer so anything above
// this is unreachable and therefore invalid as a range bound.
const MaxRangeValue = 0x7fffffff

// ErrLint is returned by Normalize when the token count or a resulting
// slot violates spec.md §3's invariants. Per spec.md §4.5/§9, a lint
// failure is not a fatal error: the caller prints usage and exits 0.
var ErrLint = errors.New("query: lint failure")

// MaxSlots is the hard cap on observations per query (spec.md §3): the
// predicate kernel carries slot data in fixed-size, addressable storage
// sized for this maximum.
const MaxSlots = 8

// Slot is one observation: "the next mt_rand(RangeMin, RangeMax) call
// returned a value v with MatchMin <= v <= MatchMax".
type Slot struct {
	MatchMin uint32
	MatchMax uint32
	RangeMin uint32
	RangeMax uint32
}

// valid reports whether the slot satisfies spec.md §3's invariants.
func (s Slot) valid() bool {
	return s.MatchMin <= s.MatchMax &&
		s.RangeMin <= s.RangeMax &&
		s.RangeMax <= MaxRangeValue &&
		s.MatchMax <= MaxRangeValue &&
		s.MatchMin >= s.RangeMin &&
		s.MatchMax <= s.RangeMax
}

// Query is an ordered, validated sequence of 1 to MaxSlots Slots.
type Query []Slot

// Normalize completes a partial tail token group into full 4-tuples
// (spec.md §4.5) and validates the result. It never mutates tokens; a
// fresh Query is returned on success.
//
// Completion rules, applied to the trailing partial group only:
//   - len%4 == 1: the final token is both MatchMin and MatchMax.
//   - len%4 == 2: the pair is MatchMin, MatchMax; RangeMin/RangeMax
//     default to the full 31-bit range [0, 0x7fffffff].
//   - len%4 == 3: ill-formed, always a lint failure.
func Normalize(tokens []uint32) (Query, error) {
	if len(tokens) == 0 {
		return nil, ErrLint
	}

	work := append([]uint32(nil), tokens...)
	if len(work)%4 == 1 {
		work = append(work, work[len(work)-1])
	}
	if len(work)%4 == 2 {
		work = append(work, 0, MaxRangeValue)
	}
	if len(work)%4 == 3 {
		return nil, ErrLint
	}
	tokens = work

	slotCount := len(tokens) / 4
	if slotCount == 0 || slotCount > MaxSlots {
		return nil, ErrLint
	}

	q := make(Query, slotCount)
	for i := range q {
		base := i * 4
		slot := Slot{
			MatchMin: tokens[base],
			MatchMax: tokens[base+1],
			RangeMin: tokens[base+2],
			RangeMax: tokens[base+3],
		}
		if !slot.valid() {
			return nil, ErrLint
		}
		q[i] = slot
	}

	return q, nil
}

// Tokens is the inverse of the 4-tuple-per-slot packing Normalize
// produces, used to build the GPU input buffer (spec.md §3's input
// buffer layout: [step, m0_min, m0_max, r0_min, r0_max, m1_min, ...]).
func (q Query) Tokens() []uint32 {
	out := make([]uint32, 0, len(q)*4)
	for _, s := range q {
		out = append(out, s.MatchMin, s.MatchMax, s.RangeMin, s.RangeMax)
	}
	return out
}
