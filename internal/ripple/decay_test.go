// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package ripple_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/ripple"
)

func testRipple(decay float64) *ripple.Ripple {
	return &ripple.Ripple{
		ID:          ulid.Make(),
		EventID:     ulid.Make(),
		CharacterID: ulid.Make(),
		Degree:      1,
		DecayFactor: decay,
	}
}

func TestApplyDecay(t *testing.T) {
	t.Run("monotonically shrinks", func(t *testing.T) {
		r := testRipple(1.0)
		prev := r.DecayFactor
		ripples := []*ripple.Ripple{r}
		for i := 0; i < 20; i++ {
			var expired []*ripple.Ripple
			ripples, expired = ripple.ApplyDecay(ripples, 0.99, 5)
			if len(ripples) == 0 {
				assert.Len(t, expired, 1)
				break
			}
			assert.LessOrEqual(t, ripples[0].DecayFactor, prev)
			prev = ripples[0].DecayFactor
		}
	})

	t.Run("expires at the floor", func(t *testing.T) {
		alive, expired := ripple.ApplyDecay([]*ripple.Ripple{testRipple(0.100001)}, 0.99, 1)
		assert.Empty(t, alive)
		require.Len(t, expired, 1)
	})

	t.Run("survives above the floor", func(t *testing.T) {
		alive, expired := ripple.ApplyDecay([]*ripple.Ripple{testRipple(0.5)}, 0.99, 1)
		require.Len(t, alive, 1)
		assert.Empty(t, expired)
		assert.InDelta(t, 0.495, alive[0].DecayFactor, 1e-9)
	})

	t.Run("manifested ripples are exempt", func(t *testing.T) {
		r := testRipple(0.2)
		r.Manifest()
		alive, expired := ripple.ApplyDecay([]*ripple.Ripple{r}, 0.5, 10)
		require.Len(t, alive, 1)
		assert.Empty(t, expired)
		assert.InDelta(t, 0.2, alive[0].DecayFactor, 1e-9)
	})

	t.Run("zero chapters is a no-op", func(t *testing.T) {
		r := testRipple(0.2)
		alive, expired := ripple.ApplyDecay([]*ripple.Ripple{r}, 0.99, 0)
		require.Len(t, alive, 1)
		assert.Empty(t, expired)
		assert.InDelta(t, 0.2, r.DecayFactor, 1e-9)
	})
}
