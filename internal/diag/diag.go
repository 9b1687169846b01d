// SPDX-License-Identifier: BSD-3-Clause

// Package diag provides the environment-gated diagnostic logger spec.md
// §6 calls for ("a logging-verbosity variable controlling diagnostic
// output of the GPU layer"). It is the idiomatic-Go analogue of the
// original Rust binary's env_logger/RUST_LOG: a plain stdlib *log.Logger
// whose output is enabled by setting PHPMTSEED_LOG to a non-empty value.
//
// None of the complete example repos invoke a structured logging
// library (zap/zerolog/logrus) in actual source — those only appear as
// bare dependency lines in other_examples/manifests/*/go.mod with no
// code to imitate — so this stays on the standard library, matching the
// teacher's own fmt.Printf/log.Printf diagnostic style (gpu/engine.go,
// gpu/memory.go).
package diag

import (
	"log"
	"os"
)

// EnvVar is the environment variable that enables diagnostic output.
const EnvVar = "PHPMTSEED_LOG"

var logger = newLogger()

func newLogger() *log.Logger {
	out := os.Stderr
	prefix := "phpmtseed: "
	l := log.New(out, prefix, 0)
	if os.Getenv(EnvVar) == "" {
		l.SetOutput(discard{})
	}
	return l
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Logf writes a diagnostic line when PHPMTSEED_LOG is set, and is a
// no-op otherwise. Diagnostics go to stderr, never stdout, so they never
// interleave with the seed/progress lines spec.md §6 requires on stdout.
func Logf(format string, args ...any) {
	logger.Printf(format, args...)
}

// Enabled reports whether diagnostic logging is currently turned on.
func Enabled() bool {
	return os.Getenv(EnvVar) != ""
}
