// SPDX-License-Identifier: BSD-3-Clause

// Package config holds the dispatch tuning knobs spec.md's §4.3/§4.6
// leave as engineering constants (workgroup shape, output capacity) and
// an optional YAML file to override them, grounded on the teacher's
// Config/DefaultConfig pattern (gpu/engine.go).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the knobs that govern how the seed space is partitioned
// and dispatched. The zero value is invalid; use Default().
type Tuning struct {
	// Workgroups is the number of workgroups dispatched per step. The
	// canonical value (65536) together with InvocationsPerWorkgroup and
	// Steps covers the full 2^32 seed space exactly once; see
	// DESIGN.md's "2^32 coverage gap" decision.
	Workgroups uint32 `yaml:"workgroups"`
	// InvocationsPerWorkgroup is the compute shader workgroup size
	// (spec.md §4.3: chosen to match GPU wavefront/warp width).
	InvocationsPerWorkgroup uint32 `yaml:"invocations_per_workgroup"`
	// Steps is the number of congruence classes the seed space is
	// partitioned into (spec.md §3's "Step").
	Steps uint32 `yaml:"steps"`
	// OutputCapacity is the number of words in the result-ring output
	// buffer, including the length-prefix word.
	OutputCapacity uint32 `yaml:"output_capacity"`
}

// Default returns the canonical constants: 65536 workgroups x 256
// invocations x 256 steps covers 2^32 seeds exactly, and a 1000-word
// output buffer.
func Default() Tuning {
	return Tuning{
		Workgroups:              65536,
		InvocationsPerWorkgroup: 256,
		Steps:                   256,
		OutputCapacity:          1000,
	}
}

// SeedSpaceCovered reports the total number of candidate seeds this
// tuning searches across all steps. A correct tuning covers exactly
// 1<<32; Validate rejects anything else.
func (t Tuning) SeedSpaceCovered() uint64 {
	return uint64(t.Workgroups) * uint64(t.InvocationsPerWorkgroup) * uint64(t.Steps)
}

// Validate checks internal consistency: the decomposition must cover
// the full 32-bit seed space exactly once, and the output buffer must
// have room for at least the length prefix plus one seed.
func (t Tuning) Validate() error {
	if t.Workgroups == 0 || t.InvocationsPerWorkgroup == 0 || t.Steps == 0 {
		return fmt.Errorf("config: workgroups, invocations_per_workgroup and steps must all be nonzero")
	}
	if t.SeedSpaceCovered() != 1<<32 {
		return fmt.Errorf("config: workgroups(%d) * invocations_per_workgroup(%d) * steps(%d) = %d, want 2^32",
			t.Workgroups, t.InvocationsPerWorkgroup, t.Steps, t.SeedSpaceCovered())
	}
	if t.OutputCapacity < 2 {
		return fmt.Errorf("config: output_capacity must hold at least the length prefix and one seed")
	}
	return nil
}

// Load reads a YAML tuning override from path, starting from Default()
// so a file only needs to set the fields it wants to change. A missing
// file is not an error — callers typically pass an optional,
// user-supplied path and fall back to Default() silently.
func Load(path string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return Tuning{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}
