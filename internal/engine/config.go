// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import (
	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/karma"
	"github.com/karmaloom/karmaloom/internal/ripple"
)

// NovelConfig tunes the engine per novel. It is loaded and saved through
// the persistence port; there is no process-wide configuration state.
type NovelConfig struct {
	NovelID ulid.ULID `json:"novel_id" jsonschema:"description=Novel this configuration belongs to"`

	// Enabled switches the whole engine on or off for the novel.
	Enabled bool `json:"enabled" jsonschema:"description=Whether the karma engine runs for this novel"`

	// AutoRipple propagates qualifying events automatically on record.
	AutoRipple bool `json:"auto_ripple" jsonschema:"description=Propagate qualifying events through the social graph"`

	// AutoExtract accepts candidate events from the extraction collaborator
	// without manual review.
	AutoExtract bool `json:"auto_extract" jsonschema:"description=Accept extracted candidate events without review"`

	// MaxRippleDegrees bounds propagation depth (hard cap 3).
	MaxRippleDegrees int `json:"max_ripple_degrees" jsonschema:"minimum=0,maximum=3"`

	// RippleThreshold is the minimum final weight that ripples.
	RippleThreshold int `json:"ripple_threshold" jsonschema:"minimum=0,maximum=100"`

	// KarmaDecayPerChapter shrinks unmanifested ripples each chapter.
	KarmaDecayPerChapter float64 `json:"karma_decay_per_chapter" jsonschema:"minimum=0,maximum=1"`

	// ProtectedCharacterIDs lists characters exempt from Face loss and
	// hostile sentiment damage (narrative plot armor).
	ProtectedCharacterIDs []ulid.ULID `json:"protected_character_ids,omitempty"`

	// FaceMultipliers scales Face changes per action type; absent entries
	// default to 1.0.
	FaceMultipliers map[karma.ActionType]float64 `json:"face_multipliers,omitempty"`
}

// DefaultNovelConfig returns the standard tuning for a novel.
func DefaultNovelConfig(novelID ulid.ULID) *NovelConfig {
	return &NovelConfig{
		NovelID:              novelID,
		Enabled:              true,
		AutoRipple:           true,
		AutoExtract:          false,
		MaxRippleDegrees:     3,
		RippleThreshold:      30,
		KarmaDecayPerChapter: 0.99,
	}
}

// rippleConfig projects the novel config onto the analyzer's tuning.
func (c *NovelConfig) rippleConfig() ripple.Config {
	return ripple.Config{
		Threshold:       c.RippleThreshold,
		MaxDegrees:      c.MaxRippleDegrees,
		DecayPerChapter: c.KarmaDecayPerChapter,
	}
}

// IsProtected reports whether the character has plot armor.
func (c *NovelConfig) IsProtected(id ulid.ULID) bool {
	for _, p := range c.ProtectedCharacterIDs {
		if p == id {
			return true
		}
	}
	return false
}

// FaceMultiplier returns the configured Face scale for an action type.
func (c *NovelConfig) FaceMultiplier(action karma.ActionType) float64 {
	if m, ok := c.FaceMultipliers[action]; ok {
		return m
	}
	return 1.0
}
