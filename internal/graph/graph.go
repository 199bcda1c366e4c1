// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package graph

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
)

// edgeKey identifies an edge by the ordered (source, target, type) triple.
// The same pair of characters may carry several edges of different types.
type edgeKey struct {
	source ulid.ULID
	target ulid.ULID
	typ    LinkType
}

// Graph is the in-memory social graph for one novel. It is not safe for
// concurrent mutation; the engine serializes writes per novel and analytics
// read a consistent snapshot under the same discipline.
type Graph struct {
	edges    map[edgeKey]*Link
	outgoing map[ulid.ULID][]*Link
	incoming map[ulid.ULID][]*Link
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		edges:    make(map[edgeKey]*Link),
		outgoing: make(map[ulid.ULID][]*Link),
		incoming: make(map[ulid.ULID][]*Link),
	}
}

// Restore seeds the graph with persisted links. Invalid links are skipped
// by the caller's deserialization boundary before they reach here.
func Restore(links []*Link) *Graph {
	g := New()
	for _, l := range links {
		g.index(l)
	}
	return g
}

// UpsertOptions carries the optional fields of an upsert.
type UpsertOptions struct {
	Strength      LinkStrength
	Sentiment     int
	Inherited     bool
	InheritedFrom string
	Hidden        bool
}

// Upsert creates the (source, target, type) edge or updates the existing
// one in place. On update, strength and sentiment are overwritten when
// provided and the last-interaction chapter advances.
func (g *Graph) Upsert(source, target ulid.ULID, linkType LinkType, chapter int, opts UpsertOptions) (*Link, error) {
	strength := opts.Strength
	if strength == "" {
		strength = StrengthModerate
	}

	key := edgeKey{source, target, linkType}
	if existing, ok := g.edges[key]; ok {
		existing.Strength = strength
		existing.Sentiment = clampSentiment(opts.Sentiment)
		existing.LastInteractionChapter = chapter
		existing.UpdatedAt = time.Now()
		return existing, nil
	}

	l := &Link{
		SourceID:               source,
		TargetID:               target,
		Type:                   linkType,
		Strength:               strength,
		Sentiment:              clampSentiment(opts.Sentiment),
		EstablishedChapter:     chapter,
		LastInteractionChapter: chapter,
		Inherited:              opts.Inherited,
		InheritedFrom:          opts.InheritedFrom,
		Hidden:                 opts.Hidden,
		UpdatedAt:              time.Now(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	g.index(l)
	return l, nil
}

func (g *Graph) index(l *Link) {
	g.edges[edgeKey{l.SourceID, l.TargetID, l.Type}] = l
	g.outgoing[l.SourceID] = append(g.outgoing[l.SourceID], l)
	g.incoming[l.TargetID] = append(g.incoming[l.TargetID], l)
}

// Link returns the edge for the exact (source, target, type) triple.
func (g *Graph) Link(source, target ulid.ULID, linkType LinkType) (*Link, bool) {
	l, ok := g.edges[edgeKey{source, target, linkType}]
	return l, ok
}

// NeighborFilter narrows a Neighbors query.
type NeighborFilter struct {
	// Types restricts to the given link types when non-empty.
	Types []LinkType
	// IncludeHidden includes edges flagged hidden.
	IncludeHidden bool
}

// Neighbors returns every edge touching the character in either direction,
// sorted deterministically. The graph is directed with possible asymmetry;
// "is there any relationship" means checking both directions, which this
// does.
func (g *Graph) Neighbors(id ulid.ULID, filter NeighborFilter) []*Link {
	var out []*Link
	seen := make(map[*Link]bool)
	for _, l := range g.outgoing[id] {
		if filter.matches(l) && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range g.incoming[id] {
		if filter.matches(l) && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sortLinks(out)
	return out
}

func (f NeighborFilter) matches(l *Link) bool {
	if l.Hidden && !f.IncludeHidden {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if l.Type == t {
			return true
		}
	}
	return false
}

// Links returns all edges sorted deterministically.
func (g *Graph) Links() []*Link {
	out := make([]*Link, 0, len(g.edges))
	for _, l := range g.edges {
		out = append(out, l)
	}
	sortLinks(out)
	return out
}

// Characters returns every character id that appears on an edge, sorted.
func (g *Graph) Characters() []ulid.ULID {
	set := make(map[ulid.ULID]bool)
	for key := range g.edges {
		set[key.source] = true
		set[key.target] = true
	}
	out := make([]ulid.ULID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// Other returns the endpoint of l that is not id.
func (l *Link) Other(id ulid.ULID) ulid.ULID {
	if l.SourceID == id {
		return l.TargetID
	}
	return l.SourceID
}

func sortLinks(links []*Link) {
	sort.Slice(links, func(i, j int) bool {
		if c := links[i].SourceID.Compare(links[j].SourceID); c != 0 {
			return c < 0
		}
		if c := links[i].TargetID.Compare(links[j].TargetID); c != 0 {
			return c < 0
		}
		return links[i].Type < links[j].Type
	})
}
