// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCoversFullSeedSpace(t *testing.T) {
	d := Default()
	if d.SeedSpaceCovered() != 1<<32 {
		t.Fatalf("Default().SeedSpaceCovered() = %d, want 2^32", d.SeedSpaceCovered())
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Default() failed Validate: %v", err)
	}
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	got, err := Load(missing)
	if err != nil {
		t.Fatalf("Load(missing) returned error: %v", err)
	}
	if got != Default() {
		t.Fatalf("Load(missing) = %+v, want %+v", got, Default())
	}
}

func TestLoadOverridesOutputCapacityOnly(t *testing.T) {
	path := writeTempConfig(t, "output_capacity: 50\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	want.OutputCapacity = 50
	if got != want {
		t.Fatalf("Load(%s) = %+v, want %+v", path, got, want)
	}
}

func TestLoadRejectsIncompleteSeedSpaceCoverage(t *testing.T) {
	path := writeTempConfig(t, "workgroups: 1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("Load expected error for a tuning that doesn't cover 2^32")
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
