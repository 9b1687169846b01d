//go:build !opencl

// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/phpmtseed/internal/config"
	"github.com/luxfi/phpmtseed/internal/query"
)

func TestRunPrintsMatchedSeedAndProgress(t *testing.T) {
	q, err := query.Normalize([]uint32{1178568022})
	require.NoError(t, err)

	cfg := config.Tuning{
		Workgroups:              1,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          1000,
	}
	backend, err := newDefaultBackend(cfg)
	require.NoError(t, err)
	s := &Session{cfg: cfg, backend: backend}
	defer s.Close()

	var buf bytes.Buffer
	require.NoError(t, s.Run(&buf, q))

	out := buf.String()
	require.Contains(t, out, "\rseed = 0x0 = 0 (PHP 7.1.0+)\n")
	require.Contains(t, out, fmt.Sprintf("\rprogress: %d / %d", StepCount, StepCount))
}

func TestRunPrintsMinimalWidthHexSeed(t *testing.T) {
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
	backend, err := newDefaultBackend(cfg)
	require.NoError(t, err)
	s := &Session{cfg: cfg, backend: backend}
	defer s.Close()

	var buf bytes.Buffer
	require.NoError(t, s.Run(&buf, q))

	out := buf.String()
	require.Contains(t, out, "\rseed = 0x1092 = 4242 (PHP 7.1.0+)\n")
	require.NotContains(t, out, "0x00001092")
}

func TestRunStopsOnOverflow(t *testing.T) {
	q, err := query.Normalize([]uint32{0, 0x7fffffff})
	require.NoError(t, err)

	cfg := config.Tuning{
		Workgroups:              1,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          4,
	}
	backend, err := newDefaultBackend(cfg)
	require.NoError(t, err)
	s := &Session{cfg: cfg, backend: backend}
	defer s.Close()

	var buf bytes.Buffer
	err = s.Run(&buf, q)
	require.ErrorIs(t, err, ErrResultOverflow)
	require.False(t, strings.Contains(buf.String(), "progress: 2 /"))
}
