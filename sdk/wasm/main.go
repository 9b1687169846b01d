//go:build js && wasm

// Package main provides WASM bindings for the PHP mt_rand seed tools.
//
// Exports to JavaScript:
// - normalize(...tokens) -> {slots: [[match_min,match_max,range_min,range_max], ...]} or {error}
// - predict(seed, rangeMin, rangeMax) -> next mt_rand(rangeMin, rangeMax) output for seed
package main

import (
	"strconv"
	"syscall/js"

	"github.com/luxfi/phpmtseed/internal/mt19937"
	"github.com/luxfi/phpmtseed/internal/query"
)

// normalize mirrors cmd/phpmtseed's CLI normalizer/linter, for callers
// that want to validate a query client-side before it is ever sent
// anywhere.
// Args: one unsigned 32-bit decimal integer per token.
// Returns: {slots: [[match_min,match_max,range_min,range_max], ...]}
// on success, or {error: "..."} on lint failure.
func normalize(this js.Value, args []js.Value) interface{} {
	tokens := make([]uint32, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseUint(a.String(), 10, 32)
		if err != nil {
			return map[string]interface{}{"error": "not an unsigned 32-bit integer: " + a.String()}
		}
		tokens = append(tokens, uint32(v))
	}

	q, err := query.Normalize(tokens)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	slots := make([]interface{}, len(q))
	for i, s := range q {
		slots[i] = []interface{}{
			float64(s.MatchMin), float64(s.MatchMax), float64(s.RangeMin), float64(s.RangeMax),
		}
	}
	return map[string]interface{}{"slots": slots}
}

// predict seeds MT19937 with seed and returns one PHP-flavored
// mt_rand(rangeMin, rangeMax) output, letting a page demonstrate what a
// candidate seed would have produced without running the full search.
// Args: seed, rangeMin, rangeMax (numbers).
func predict(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf("error: requires (seed, rangeMin, rangeMax)")
	}

	seed := uint32(args[0].Int())
	rangeMin := uint32(args[1].Int())
	rangeMax := uint32(args[2].Int())

	st := mt19937.New(seed)
	return js.ValueOf(float64(st.RandRange(rangeMin, rangeMax)))
}

func main() {
	js.Global().Set("phpmtseed", map[string]interface{}{
		"normalize": js.FuncOf(normalize),
		"predict":   js.FuncOf(predict),
	})

	// Keep the Go runtime alive
	select {}
}
