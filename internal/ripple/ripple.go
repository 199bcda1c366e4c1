// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package ripple propagates karma events through the social graph,
// producing decaying consequence records for characters who were not
// directly involved.
package ripple

import (
	"hash/fnv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/graph"
)

// ThreatLevel grades how dangerous a rippled grievance is to its carrier.
type ThreatLevel string

// Threat levels.
const (
	ThreatMinor    ThreatLevel = "minor"
	ThreatModerate ThreatLevel = "moderate"
	ThreatMajor    ThreatLevel = "major"
	ThreatExtreme  ThreatLevel = "extreme"
)

// ThreatLevelFor buckets the absolute sentiment change.
func ThreatLevelFor(sentimentChange int) ThreatLevel {
	abs := sentimentChange
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 50:
		return ThreatExtreme
	case abs >= 35:
		return ThreatMajor
	case abs >= 25:
		return ThreatModerate
	default:
		return ThreatMinor
	}
}

// Hop is one step in a ripple's connection path, from the event's target
// outward.
type Hop struct {
	CharacterID ulid.ULID      `json:"character_id"`
	LinkType    graph.LinkType `json:"link_type"`
}

// Ripple is a derived, ephemeral consequence of a karma event reaching a
// character outside the original pair. It fades by decay and is deleted
// once its decay factor crosses the floor.
type Ripple struct {
	ID      ulid.ULID
	EventID ulid.ULID
	NovelID ulid.ULID

	CharacterID ulid.ULID
	Path        []Hop
	Degree      int

	SentimentChange   int
	BecomesThreat     bool
	Threat            ThreatLevel
	PotentialResponse string

	DecayFactor float64
	Manifested  bool

	CreatedChapter int
	CreatedAt      time.Time
}

// Manifest marks the ripple as having surfaced in the narrative, which
// exempts it from decay.
func (r *Ripple) Manifest() {
	r.Manifested = true
}

// Response phrasebooks per threat tier. Selection is deterministic, seeded
// from the event and character ids, so replays produce identical ripples.
var (
	hostileResponses = map[ThreatLevel][]string{
		ThreatMinor: {
			"speaks poorly of the offender in private",
			"quietly withdraws goodwill",
		},
		ThreatModerate: {
			"demands an explanation through intermediaries",
			"severs minor dealings with the offender's allies",
		},
		ThreatMajor: {
			"openly declares the grievance before their sect",
			"begins gathering allies against the offender",
		},
		ThreatExtreme: {
			"swears an oath of vengeance",
			"sets out to hunt the offender down",
		},
	}
	favorableResponses = []string{
		"speaks of the deed with admiration",
		"seeks to befriend the benefactor",
		"sends a gift of appreciation",
	}
)

// responseFor picks the potential response deterministically.
func responseFor(eventID, characterID ulid.ULID, sentimentChange int, threat ThreatLevel) string {
	h := fnv.New32a()
	h.Write(eventID[:])
	h.Write(characterID[:])
	seed := h.Sum32()

	if sentimentChange < 0 {
		pool := hostileResponses[threat]
		return pool[int(seed)%len(pool)]
	}
	return favorableResponses[int(seed)%len(favorableResponses)]
}
