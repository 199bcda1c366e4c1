// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package feud holds the escalating-hostility and owed-obligation
// aggregates layered on karma events.
package feud

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Party is one side of a blood feud: a named group of one or more
// characters.
type Party struct {
	ID        ulid.ULID   `json:"id"`
	Name      string      `json:"name"`
	MemberIDs []ulid.ULID `json:"member_ids"`
}

// Includes reports whether the character belongs to the party.
func (p Party) Includes(id ulid.ULID) bool {
	for _, m := range p.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}

// ResolutionType classifies how a feud ended.
type ResolutionType string

// Resolution types.
const (
	ResolutionVengeance      ResolutionType = "vengeance"
	ResolutionReconciliation ResolutionType = "reconciliation"
	ResolutionExtermination  ResolutionType = "extermination"
	ResolutionMediation      ResolutionType = "mediation"
)

// Escalation is one entry in a feud's escalation log.
type Escalation struct {
	Chapter int       `json:"chapter"`
	EventID ulid.ULID `json:"event_id"`
	Delta   int       `json:"delta"`
	Note    string    `json:"note"`
	At      time.Time `json:"at"`
}

// BloodFeud is a standing hostility between two parties, seeded by a karma
// event and escalated by later ones. Intensity stays in [0,100].
type BloodFeud struct {
	ID      ulid.ULID
	NovelID ulid.ULID

	PartyA Party
	PartyB Party

	Cause         string
	OriginEventID ulid.ULID

	Intensity int

	Resolved        bool
	Resolution      ResolutionType
	ResolvedChapter int

	Escalations []Escalation

	CreatedAt time.Time
}

// NewBloodFeud seeds a feud from an originating event.
func NewBloodFeud(novelID ulid.ULID, partyA, partyB Party, cause string, originEventID ulid.ULID, intensity int) *BloodFeud {
	return &BloodFeud{
		ID:            ulid.Make(),
		NovelID:       novelID,
		PartyA:        partyA,
		PartyB:        partyB,
		Cause:         cause,
		OriginEventID: originEventID,
		Intensity:     clampIntensity(intensity),
		CreatedAt:     time.Now(),
	}
}

// Escalate appends a log entry and shifts intensity, clamped to [0,100].
// Escalating a resolved feud is a no-op returning false; callers log it.
func (f *BloodFeud) Escalate(delta int, chapter int, eventID ulid.ULID, note string) bool {
	if f.Resolved {
		return false
	}
	f.Intensity = clampIntensity(f.Intensity + delta)
	f.Escalations = append(f.Escalations, Escalation{
		Chapter: chapter,
		EventID: eventID,
		Delta:   delta,
		Note:    note,
		At:      time.Now(),
	})
	return true
}

// Resolve terminates the feud. Idempotent: a second call is a no-op
// returning false so the caller can log the double resolution.
func (f *BloodFeud) Resolve(resolution ResolutionType, chapter int) bool {
	if f.Resolved {
		return false
	}
	f.Resolved = true
	f.Resolution = resolution
	f.ResolvedChapter = chapter
	return true
}

// Involves reports whether the character belongs to either party.
func (f *BloodFeud) Involves(id ulid.ULID) bool {
	return f.PartyA.Includes(id) || f.PartyB.Includes(id)
}

// OpposingParty returns the party the character is feuding against, and
// whether the character was found in the feud at all.
func (f *BloodFeud) OpposingParty(id ulid.ULID) (Party, bool) {
	if f.PartyA.Includes(id) {
		return f.PartyB, true
	}
	if f.PartyB.Includes(id) {
		return f.PartyA, true
	}
	return Party{}, false
}

func clampIntensity(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
