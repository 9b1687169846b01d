// SPDX-License-Identifier: BSD-3-Clause

package gpuexec

import (
	"github.com/luxfi/phpmtseed/internal/mt19937"
	"github.com/luxfi/phpmtseed/internal/query"
)

// evaluate is spec.md §4.2's predicate kernel, expressed as ordinary Go:
// seed s with MT19937 and check its first len(q) mt_rand outputs against
// every slot. This is the function both backends must agree with —
// backend_reference.go calls it directly per candidate seed, and the
// embedded shader sources (shader/mt19937.wgsl, shader/mt19937.cl)
// encode the same steps for execution on an accelerator.
func evaluate(seed uint32, q query.Query) bool {
	st := mt19937.New(seed)
	for _, slot := range q {
		v := st.RandRange(slot.RangeMin, slot.RangeMax)
		if v < slot.MatchMin || v > slot.MatchMax {
			return false
		}
	}
	return true
}
