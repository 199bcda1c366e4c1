// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/graph"
	"github.com/karmaloom/karmaloom/internal/karma"
)

// FormatContext renders the karmic state relevant to a scene as a plain-text
// block for prompt injection. It covers the relationships among the present
// characters, their unsettled karma, active feuds, unpaid debts, and pending
// ripple threats. The output is deterministic for a given state: identical
// inputs render byte-identical blocks. Read-only; never mutates state.
func (e *Engine) FormatContext(ctx context.Context, novelID ulid.ULID, presentIDs []ulid.ULID, currentChapter int) (string, error) {
	st, err := e.rlockNovel(ctx, novelID)
	if err != nil {
		return "", err
	}
	defer st.mu.RUnlock()

	present := make(map[ulid.ULID]bool, len(presentIDs))
	ordered := make([]ulid.ULID, 0, len(presentIDs))
	for _, id := range presentIDs {
		if !present[id] {
			present[id] = true
			ordered = append(ordered, id)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Compare(ordered[j]) < 0 })

	name := func(id ulid.ULID) string {
		if n, ok := e.roster.ResolveName(novelID, id); ok {
			return n
		}
		return id.String()
	}

	var b strings.Builder
	b.WriteString("## Karmic Context\n")

	e.writeRelationships(&b, st, ordered, present, name)
	e.writeUnsettledKarma(&b, st, present, currentChapter)
	e.writeFeuds(&b, st, present)
	e.writeDebts(&b, st, present)
	e.writeThreats(&b, st, present, name)

	return b.String(), nil
}

func (e *Engine) writeRelationships(b *strings.Builder, st *novelState, ordered []ulid.ULID, present map[ulid.ULID]bool, name func(ulid.ULID) string) {
	var lines []string
	for _, id := range ordered {
		for _, l := range st.graph.Neighbors(id, graph.NeighborFilter{}) {
			if l.SourceID != id || !present[l.TargetID] {
				continue
			}
			line := fmt.Sprintf("- %s → %s: %s (%s, sentiment %d)",
				name(l.SourceID), name(l.TargetID), l.Type, l.SentimentLabel(), l.Sentiment)
			if l.UnsettledKarma > 0 {
				line += fmt.Sprintf(", unsettled karma %d", l.UnsettledKarma)
			}
			lines = append(lines, line)
		}
	}
	writeSection(b, "Relationships", lines)
}

func (e *Engine) writeUnsettledKarma(b *strings.Builder, st *novelState, present map[ulid.ULID]bool, currentChapter int) {
	var lines []string
	for _, evt := range st.events {
		if !evt.Unsettled() || evt.Polarity != karma.PolarityNegative {
			continue
		}
		if !present[evt.ActorID] && !present[evt.TargetID] {
			continue
		}
		age := currentChapter - evt.Chapter
		line := fmt.Sprintf("- %s wronged %s (%s, weight %d, chapter %d",
			evt.ActorName, evt.TargetName, evt.Action, evt.FinalWeight, evt.Chapter)
		if age > 0 {
			line += fmt.Sprintf(", %d chapters ago", age)
		}
		line += ")"
		if evt.Description != "" {
			line += ": " + evt.Description
		}
		lines = append(lines, line)
	}
	writeSection(b, "Unsettled Karma", lines)
}

func (e *Engine) writeFeuds(b *strings.Builder, st *novelState, present map[ulid.ULID]bool) {
	var lines []string
	for _, f := range st.feuds {
		if f.Resolved {
			continue
		}
		involved := false
		for id := range present {
			if f.Involves(id) {
				involved = true
				break
			}
		}
		if !involved {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s vs %s (intensity %d): %s",
			f.PartyA.Name, f.PartyB.Name, f.Intensity, f.Cause))
	}
	sort.Strings(lines)
	writeSection(b, "Active Blood Feuds", lines)
}

func (e *Engine) writeDebts(b *strings.Builder, st *novelState, present map[ulid.ULID]bool) {
	var lines []string
	for _, d := range st.debts {
		if d.Repaid || (!present[d.DebtorID] && !present[d.CreditorID]) {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s owes %s a %s (weight %d)",
			d.DebtorName, d.CreditorName, d.Type, d.Weight))
	}
	writeSection(b, "Unpaid Face Debts", lines)
}

func (e *Engine) writeThreats(b *strings.Builder, st *novelState, present map[ulid.ULID]bool, name func(ulid.ULID) string) {
	var lines []string
	for _, r := range st.ripples {
		if r.Manifested || !r.BecomesThreat || !present[r.CharacterID] {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s harbors a %s grievance (degree %d): %s",
			name(r.CharacterID), r.Threat, r.Degree, r.PotentialResponse))
	}
	sort.Strings(lines)
	writeSection(b, "Pending Threats", lines)
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n### " + title + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
}
