// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package face maintains per-character reputation profiles: aggregate Face,
// category breakdown, karma balance, and the record of titles,
// accomplishments, and shames.
package face

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/karma"
)

// Tier is a character's renown bracket derived from total Face.
type Tier string

// Renown tiers.
const (
	TierNobody    Tier = "nobody"
	TierKnown     Tier = "known"
	TierRenowned  Tier = "renowned"
	TierFamous    Tier = "famous"
	TierLegendary Tier = "legendary"
	TierMythical  Tier = "mythical"
)

// tierThresholds maps the lower bound of total Face to each tier above
// nobody, checked from highest to lowest.
var tierThresholds = []struct {
	min  int
	tier Tier
}{
	{10000, TierMythical},
	{5000, TierLegendary},
	{2000, TierFamous},
	{500, TierRenowned},
	{100, TierKnown},
}

// TierFor returns the renown tier for a total Face score.
func TierFor(totalFace int) Tier {
	for _, t := range tierThresholds {
		if totalFace >= t.min {
			return t.tier
		}
	}
	return TierNobody
}

// Title is an earned honorific.
type Title struct {
	Name    string `json:"name"`
	Chapter int    `json:"chapter"`
}

// Accomplishment records a Face gain.
type Accomplishment struct {
	Description string             `json:"description"`
	Category    karma.FaceCategory `json:"category"`
	Amount      int                `json:"amount"`
	Chapter     int                `json:"chapter"`
}

// Shame records a Face loss.
type Shame struct {
	Description string             `json:"description"`
	Category    karma.FaceCategory `json:"category"`
	Amount      int                `json:"amount"`
	Chapter     int                `json:"chapter"`
}

// Profile is one character's reputation ledger entry. TotalFace is always
// the sum of the category scores; it is never set directly.
type Profile struct {
	CharacterID   ulid.ULID
	CharacterName string

	TotalFace  int
	Categories map[karma.FaceCategory]int

	KarmaBalance       int
	PositiveKarmaTotal int
	NegativeKarmaTotal int

	Tier Tier

	Titles          []Title
	Accomplishments []Accomplishment
	Shames          []Shame

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates an empty profile at tier nobody.
func NewProfile(characterID ulid.ULID, name string) *Profile {
	now := time.Now()
	cats := make(map[karma.FaceCategory]int, 6)
	for _, c := range karma.FaceCategories() {
		cats[c] = 0
	}
	return &Profile{
		CharacterID:   characterID,
		CharacterName: name,
		Categories:    cats,
		Tier:          TierNobody,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// recompute restores the TotalFace and Tier invariants after a category
// change.
func (p *Profile) recompute() {
	total := 0
	for _, v := range p.Categories {
		total += v
	}
	p.TotalFace = total
	p.Tier = TierFor(total)
	p.UpdatedAt = time.Now()
}
