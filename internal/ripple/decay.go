// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package ripple

import "math"

// DecayFloor is the factor at which a ripple has narratively faded and is
// deleted. Reaching the floor exactly counts as faded, not as an error.
const DecayFloor = 0.1

// ApplyDecay multiplies every unmanifested ripple's decay factor by
// rate^chaptersPassed and partitions the input into survivors and expired.
// Manifested ripples never decay. This is the only garbage collection
// ripples get.
func ApplyDecay(ripples []*Ripple, rate float64, chaptersPassed int) (alive, expired []*Ripple) {
	if chaptersPassed <= 0 {
		return ripples, nil
	}
	factor := math.Pow(rate, float64(chaptersPassed))
	for _, r := range ripples {
		if !r.Manifested {
			r.DecayFactor *= factor
		}
		if !r.Manifested && r.DecayFactor <= DecayFloor {
			expired = append(expired, r)
			continue
		}
		alive = append(alive, r)
	}
	return alive, expired
}
