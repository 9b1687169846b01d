// SPDX-License-Identifier: BSD-3-Clause

// Command phpmtseed recovers the 32-bit seed of PHP 7.1.0+'s mt_rand
// from one or more observed outputs, brute-forcing the full 2^32 seed
// space on a GPU compute kernel (or, in a build without the "opencl"
// tag, on the CPU).
//
// Usage: phpmtseed VALUE_OR_MATCH_MIN [MATCH_MAX [RANGE_MIN RANGE_MAX]] ...
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/luxfi/phpmtseed/internal/config"
	"github.com/luxfi/phpmtseed/internal/gpuexec"
	"github.com/luxfi/phpmtseed/internal/query"
)

const usage = `Usage: phpmtseed VALUE_OR_MATCH_MIN [MATCH_MAX [RANGE_MIN RANGE_MAX]] ...

This tool is similar to openwall's php_mt_seed, though phpmtseed only
supports PHP 7.1.0+. Have a look at openwall's php_mt_seed documentation
for more information on CLI arguments:
- https://www.openwall.com/php_mt_seed/README
- https://github.com/openwall/php_mt_seed

Arguments group into slots of up to 4 tokens each: match_min, match_max,
range_min, range_max. A trailing slot of 1 token is treated as an exact
match with the default range; a trailing slot of 2 tokens is treated as
a match range with the default range. At most 8 slots are supported.`

// parseArguments parses os.Args[1:] as unsigned 32-bit decimal integers.
// A parse failure is fatal (spec.md §6/§7: nonzero exit, no usage print).
func parseArguments(args []string) []uint32 {
	tokens := make([]uint32, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "phpmtseed: cannot parse argument %q as an integer\n", a)
			os.Exit(1)
		}
		tokens[i] = uint32(v)
	}
	return tokens
}

func main() {
	tokens := parseArguments(os.Args[1:])

	q, err := query.Normalize(tokens)
	if err != nil {
		fmt.Println(usage)
		os.Exit(0)
	}

	cfg := config.Default()
	if path := os.Getenv("PHPMTSEED_CONFIG"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "phpmtseed: %v\n", err)
			os.Exit(1)
		}
	}

	session, err := gpuexec.NewSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "phpmtseed: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	if err := session.Run(os.Stdout, q); err != nil {
		fmt.Fprintf(os.Stderr, "phpmtseed: %v\n", err)
		os.Exit(1)
	}
}
