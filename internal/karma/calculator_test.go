// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package karma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/karma"
)

func TestComputeWeight(t *testing.T) {
	t.Run("public severe kill clamps to 100", func(t *testing.T) {
		res, err := karma.ComputeWeight(karma.ActionKill, karma.SeveritySevere, karma.Context{WasPublic: true})
		require.NoError(t, err)
		// 80 * 2.0 * 1.4 = 224, clamped
		assert.Equal(t, 80, res.BaseWeight)
		assert.Equal(t, 100, res.FinalWeight)
		assert.Equal(t, karma.PolarityNegative, res.Polarity)
		require.Len(t, res.Modifiers, 1)
		assert.Equal(t, karma.ModifierPublicVisibility, res.Modifiers[0].Type)
		assert.InDelta(t, 1.4, res.Modifiers[0].Multiplier, 1e-9)
	})

	t.Run("no modifiers uses severity only", func(t *testing.T) {
		res, err := karma.ComputeWeight(karma.ActionGift, karma.SeverityMinor, karma.Context{})
		require.NoError(t, err)
		// 25 * 0.5 = 12.5, rounds to 13
		assert.Equal(t, 13, res.FinalWeight)
		assert.Empty(t, res.Modifiers)
	})

	t.Run("discount modifiers reduce weight", func(t *testing.T) {
		res, err := karma.ComputeWeight(karma.ActionDefeat, karma.SeverityModerate, karma.Context{
			PowerDifference: -2,
			WasProvoked:     true,
			WasJustified:    true,
		})
		require.NoError(t, err)
		// 30 * 0.8 * 0.7 * 0.6 = 10.08 -> 10
		assert.Equal(t, 10, res.FinalWeight)
		require.Len(t, res.Modifiers, 3)
	})

	t.Run("treasure value is tiered", func(t *testing.T) {
		cases := []struct {
			value int
			mult  float64
			count int
		}{
			{0, 0, 0},
			{50, 0, 0},
			{100, 1.2, 1},
			{1000, 1.5, 1},
			{5000, 1.8, 1},
			{10000, 2.0, 1},
		}
		for _, tc := range cases {
			res, err := karma.ComputeWeight(karma.ActionSteal, karma.SeverityModerate, karma.Context{TreasureValue: tc.value})
			require.NoError(t, err)
			require.Len(t, res.Modifiers, tc.count)
			if tc.count > 0 {
				assert.Equal(t, karma.ModifierTreasureValue, res.Modifiers[0].Type)
				assert.InDelta(t, tc.mult, res.Modifiers[0].Multiplier, 1e-9)
			}
		}
	})

	t.Run("invalid action rejected", func(t *testing.T) {
		_, err := karma.ComputeWeight("supernova", karma.SeverityMinor, karma.Context{})
		require.ErrorIs(t, err, karma.ErrInvalidActionType)
	})

	t.Run("invalid severity rejected", func(t *testing.T) {
		_, err := karma.ComputeWeight(karma.ActionKill, "apocalyptic", karma.Context{})
		require.ErrorIs(t, err, karma.ErrInvalidSeverity)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		kctx := karma.Context{
			PowerDifference:   3,
			WasPublic:         true,
			ClanInvolved:      true,
			TreasureValue:     7500,
			CultivationImpact: true,
		}
		first, err := karma.ComputeWeight(karma.ActionBetray, karma.SeverityMajor, kctx)
		require.NoError(t, err)
		for i := 0; i < 50; i++ {
			res, err := karma.ComputeWeight(karma.ActionBetray, karma.SeverityMajor, kctx)
			require.NoError(t, err)
			assert.Equal(t, first, res)
		}
	})

	t.Run("final weight bounded for all combinations", func(t *testing.T) {
		contexts := []karma.Context{
			{},
			{WasProvoked: true, WasJustified: true, PowerDifference: -5},
			{WasPublic: true, TargetInnocent: true, ClanInvolved: true, SectInvolved: true,
				TreasureValue: 99999, CultivationImpact: true, DeepBetrayal: true, PowerDifference: 9},
		}
		for _, action := range karma.ValidActionTypes() {
			for _, sev := range karma.ValidSeverities() {
				for _, kctx := range contexts {
					res, err := karma.ComputeWeight(action, sev, kctx)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, res.FinalWeight, 0)
					assert.LessOrEqual(t, res.FinalWeight, 100)
				}
			}
		}
	})
}

func TestComputeFaceChange(t *testing.T) {
	t.Run("negative action costs the target face", func(t *testing.T) {
		fc, err := karma.ComputeFaceChange(100, karma.PolarityNegative, karma.ActionKill)
		require.NoError(t, err)
		assert.Equal(t, 60, fc.ActorDelta)
		assert.Equal(t, -40, fc.TargetDelta)
		assert.Equal(t, karma.FaceMartial, fc.Category)
	})

	t.Run("positive action raises both", func(t *testing.T) {
		fc, err := karma.ComputeFaceChange(60, karma.PolarityPositive, karma.ActionSave)
		require.NoError(t, err)
		assert.Equal(t, 36, fc.ActorDelta)
		assert.Equal(t, 24, fc.TargetDelta)
		assert.Equal(t, karma.FaceMoral, fc.Category)
	})

	t.Run("neutral action moves actor only", func(t *testing.T) {
		fc, err := karma.ComputeFaceChange(60, karma.PolarityNeutral, karma.ActionAvenge)
		require.NoError(t, err)
		assert.Zero(t, fc.TargetDelta)
		assert.NotZero(t, fc.ActorDelta)
	})
}

func TestComputeSentimentChange(t *testing.T) {
	t.Run("negative swings harder than positive", func(t *testing.T) {
		neg := karma.ComputeSentimentChange(50, karma.PolarityNegative, false)
		pos := karma.ComputeSentimentChange(50, karma.PolarityPositive, false)
		assert.Equal(t, -40, neg)
		assert.Equal(t, 30, pos)
	})

	t.Run("public actions cut deeper", func(t *testing.T) {
		private := karma.ComputeSentimentChange(50, karma.PolarityNegative, false)
		public := karma.ComputeSentimentChange(50, karma.PolarityNegative, true)
		assert.Less(t, public, private)
	})

	t.Run("clamped to sentiment range", func(t *testing.T) {
		assert.Equal(t, -96, karma.ComputeSentimentChange(100, karma.PolarityNegative, true))
		assert.GreaterOrEqual(t, karma.ComputeSentimentChange(100, karma.PolarityNegative, true), -100)
		assert.LessOrEqual(t, karma.ComputeSentimentChange(100, karma.PolarityPositive, true), 100)
	})

	t.Run("neutral polarity is inert", func(t *testing.T) {
		assert.Zero(t, karma.ComputeSentimentChange(90, karma.PolarityNeutral, true))
	})
}
