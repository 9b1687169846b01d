// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

import (
	"fmt"
	"io"

	"github.com/luxfi/phpmtseed/internal/diag"
	"github.com/luxfi/phpmtseed/internal/query"
)

// Run drives a complete search: every step in [0, StepCount), in order,
// reporting matches as it finds them and progress after each step
// (spec.md §4.3/§6). It stops at the first backend error: for the
// reference backend that can only be ErrResultOverflow; the OpenCL
// backend can also return errors from its buffer and kernel calls.
//
// out receives one line per matched seed, formatted
// "\rseed = 0xH = D (PHP 7.1.0+)\n" (minimal-width hex, matching
// original_source/src/main.rs's println!("\rseed = {:#x} = {} ...")),
// and a progress line "\rprogress: NNN / 256" after every step,
// overwritten in place the way a long-running CLI tool reports work
// without flooding the terminal with scrollback. The leading \r on the
// seed line overwrites any stale progress line still on the terminal,
// so a match found mid-step doesn't get appended onto it.
func (s *Session) Run(out io.Writer, q query.Query) error {
	for step := uint32(0); step < StepCount; step++ {
		result, err := s.Dispatch(step, q)
		if err != nil {
			fmt.Fprintln(out)
			return err
		}

		for _, seed := range result.Seeds {
			fmt.Fprintf(out, "\rseed = 0x%x = %d (PHP 7.1.0+)\n", seed, seed)
		}
		diag.Logf("driver: step=%d matches=%d", step, len(result.Seeds))

		fmt.Fprintf(out, "\rprogress: %d / %d", step+1, StepCount)
	}
	fmt.Fprintln(out)
	return nil
}
