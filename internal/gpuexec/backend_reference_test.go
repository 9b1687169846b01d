//go:build !opencl

// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/phpmtseed/internal/config"
	"github.com/luxfi/phpmtseed/internal/query"
)

// searchAll runs every step of a tuning's dispatch plan against q and
// collects every matching seed, independent of the Session/driver
// plumbing. Small tunings (SeedSpaceCovered far below 2^32) keep these
// tests fast while still exercising the exact seed-addressing formula
// backend_reference.go and shader/mt19937.cl both implement.
func searchAll(t *testing.T, cfg config.Tuning, q query.Query) []uint32 {
	t.Helper()
	backend, err := newDefaultBackend(cfg)
	require.NoError(t, err)
	defer backend.Close()

	var all []uint32
	for step := uint32(0); step < cfg.Steps; step++ {
		result, err := backend.Dispatch(step, q)
		require.NoError(t, err)
		all = append(all, result.Seeds...)
	}
	return all
}

// smallTuning covers exactly [0, 65536) across 256 steps, small enough
// to brute-force in a unit test while keeping the same step-partition
// formula as config.Default().
func smallTuning() config.Tuning {
	return config.Tuning{
		Workgroups:              1,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          1000,
	}
}

func TestDispatchFindsSeedZeroFromFirstOutput(t *testing.T) {
	q, err := query.Normalize([]uint32{1178568022})
	require.NoError(t, err)

	seeds := searchAll(t, smallTuning(), q)
	require.Contains(t, seeds, uint32(0))
}

func TestDispatchFindsSeedZeroWithExplicitRange(t *testing.T) {
	q, err := query.Normalize([]uint32{16378811, 16378811, 0, 21474836})
	require.NoError(t, err)

	seeds := searchAll(t, smallTuning(), q)
	require.Contains(t, seeds, uint32(0))
}

func TestDispatchFindsSeed4242Exclusively(t *testing.T) {
	q, err := query.Normalize([]uint32{
		697823703, 697823703, 0, 0x7fffffff,
		1736388855, 1736388855, 0, 0x7fffffff,
		2019524934, 2019524934, 0, 0x7fffffff,
	})
	require.NoError(t, err)

	cfg := config.Tuning{
		Workgroups:              1,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          1000,
	}
	seeds := searchAll(t, cfg, q)
	require.Equal(t, []uint32{4242}, seeds)
}

func TestDispatchFindsSeed424242Exclusively(t *testing.T) {
	q, err := query.Normalize([]uint32{
		7505, 7505, 1000, 10000,
		2986, 2986, 1000, 10000,
		1457, 1457, 1000, 10000,
	})
	require.NoError(t, err)

	// 424242 needs Workgroups*InvocationsPerWorkgroup*Steps > 424242 to
	// be reachable; widen the small tuning's coverage accordingly while
	// keeping Steps at 256 so the step-addressing arithmetic is
	// unchanged.
	cfg := config.Tuning{
		Workgroups:              8,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          1000,
	}
	seeds := searchAll(t, cfg, q)
	require.Equal(t, []uint32{424242}, seeds)
}

func TestDispatchStepPartitionIsExhaustiveAndDisjoint(t *testing.T) {
	// Every seed in [0, N) should be found by exactly one (step, slot
	// that always matches) pair, proving the addressing formula visits
	// each candidate once.
	q, err := query.Normalize([]uint32{0, 0x7fffffff})
	require.NoError(t, err)

	cfg := smallTuning()
	seeds := searchAll(t, cfg, q)
	require.Len(t, seeds, int(cfg.SeedSpaceCovered()))

	seen := make(map[uint32]bool, len(seeds))
	for _, s := range seeds {
		require.False(t, seen[s], "seed %d reported more than once", s)
		seen[s] = true
	}
}

func TestDispatchOverflowIsReported(t *testing.T) {
	q, err := query.Normalize([]uint32{0, 0x7fffffff})
	require.NoError(t, err)

	cfg := config.Tuning{
		Workgroups:              1,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          4, // room for 3 seeds; step 0 alone finds 256
	}
	backend, err := newDefaultBackend(cfg)
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Dispatch(0, q)
	require.ErrorIs(t, err, ErrResultOverflow)
}
