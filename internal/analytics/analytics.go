// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package analytics provides read-only queries over the social graph:
// influence ranking, shortest paths, clustering, and hostility assessment.
// Nothing here mutates graph or ledger state.
package analytics

import (
	"fmt"
	"sort"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/feud"
	"github.com/karmaloom/karmaloom/internal/graph"
	"github.com/karmaloom/karmaloom/internal/karma"
)

// FaceSource supplies total Face per character without exposing the ledger.
type FaceSource interface {
	TotalFace(id ulid.ULID) int
}

// Influence weights. Connections count for standing; strong bonds count
// double again.
const (
	connectionWeight       = 50
	strongConnectionWeight = 100
)

// InfluenceScore ranks one character.
type InfluenceScore struct {
	CharacterID       ulid.ULID
	TotalFace         int
	Connections       int
	StrongConnections int
	Score             int
}

// MostInfluential returns the top n characters by influence score. The
// sort is stable and ties break by character id, so rankings are
// reproducible.
func MostInfluential(g *graph.Graph, faces FaceSource, n int) []InfluenceScore {
	var scores []InfluenceScore
	for _, id := range g.Characters() {
		links := g.Neighbors(id, graph.NeighborFilter{IncludeHidden: true})
		strong := 0
		for _, l := range links {
			if l.Strength == graph.StrengthStrong || l.Strength == graph.StrengthUnbreakable {
				strong++
			}
		}
		total := faces.TotalFace(id)
		scores = append(scores, InfluenceScore{
			CharacterID:       id,
			TotalFace:         total,
			Connections:       len(links),
			StrongConnections: strong,
			Score:             total + len(links)*connectionWeight + strong*strongConnectionWeight,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].CharacterID.Compare(scores[j].CharacterID) < 0
	})
	if n > 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// PathStep is one hop of a shortest path.
type PathStep struct {
	CharacterID ulid.ULID
	LinkType    graph.LinkType
}

// ShortestPath runs BFS over the undirected projection of the graph (every
// directed edge traversed both ways) and returns the hops from a to b,
// excluding a itself. Returns false when no path exists within maxDepth
// hops.
func ShortestPath(g *graph.Graph, a, b ulid.ULID, maxDepth int) ([]PathStep, bool) {
	if a == b {
		return nil, true
	}
	type node struct {
		id    ulid.ULID
		path  []PathStep
		depth int
	}
	visited := map[ulid.ULID]bool{a: true}
	queue := []node{{id: a}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, l := range g.Neighbors(cur.id, graph.NeighborFilter{IncludeHidden: true}) {
			other := l.Other(cur.id)
			if visited[other] {
				continue
			}
			visited[other] = true
			path := make([]PathStep, 0, len(cur.path)+1)
			path = append(path, cur.path...)
			path = append(path, PathStep{CharacterID: other, LinkType: l.Type})
			if other == b {
				return path, true
			}
			queue = append(queue, node{id: other, path: path, depth: cur.depth + 1})
		}
	}
	return nil, false
}

// Cluster is one connected component of the amicable subgraph.
type Cluster struct {
	Members           []ulid.ULID
	DominantLinkTypes []graph.LinkType
}

// DetectClusters finds connected components over the subgraph restricted
// to edges with non-negative sentiment; hostile edges do not bind a
// cluster. Singleton components are excluded. Each cluster reports its
// top-3 most frequent link types.
func DetectClusters(g *graph.Graph) []Cluster {
	amicable := make(map[ulid.ULID][]*graph.Link)
	for _, l := range g.Links() {
		if l.Sentiment < 0 {
			continue
		}
		amicable[l.SourceID] = append(amicable[l.SourceID], l)
		amicable[l.TargetID] = append(amicable[l.TargetID], l)
	}

	ids := make([]ulid.ULID, 0, len(amicable))
	for id := range amicable {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	visited := make(map[ulid.ULID]bool)
	var clusters []Cluster
	for _, start := range ids {
		if visited[start] {
			continue
		}
		var members []ulid.ULID
		typeCount := make(map[graph.LinkType]int)
		stack := []ulid.ULID{start}
		visited[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, cur)
			for _, l := range amicable[cur] {
				typeCount[l.Type]++
				other := l.Other(cur)
				if !visited[other] {
					visited[other] = true
					stack = append(stack, other)
				}
			}
		}
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Compare(members[j]) < 0 })
		clusters = append(clusters, Cluster{
			Members:           members,
			DominantLinkTypes: topLinkTypes(typeCount, 3),
		})
	}
	return clusters
}

// topLinkTypes returns the n most frequent link types, ties broken by name.
func topLinkTypes(counts map[graph.LinkType]int, n int) []graph.LinkType {
	types := make([]graph.LinkType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > n {
		types = types[:n]
	}
	return types
}

// enemyLinkTypes and allyLinkTypes are the fixed classification sets for
// direct-edge hostility and friendship.
var enemyLinkTypes = map[graph.LinkType]bool{
	graph.LinkEnemy:    true,
	graph.LinkRival:    true,
	graph.LinkBetrayer: true,
}

var allyLinkTypes = map[graph.LinkType]bool{
	graph.LinkAlly:         true,
	graph.LinkFriend:       true,
	graph.LinkSwornBrother: true,
	graph.LinkBenefactor:   true,
	graph.LinkSavior:       true,
	graph.LinkSpouse:       true,
	graph.LinkDaoCompanion: true,
}

// Standing classifies one other character relative to the queried one,
// with the reasons the classification was made.
type Standing struct {
	CharacterID ulid.ULID
	Reasons     []string
}

// FindEnemies returns everyone hostile to the character: direct edges in
// the enemy type set, opposing blood-feud parties, and counterparties of
// unsettled negative karma events. Each entry carries its reasons so
// callers can explain the classification.
func FindEnemies(g *graph.Graph, id ulid.ULID, feuds []*feud.BloodFeud, events []*karma.Event) []Standing {
	reasons := make(map[ulid.ULID][]string)

	for _, l := range g.Neighbors(id, graph.NeighborFilter{IncludeHidden: true}) {
		if enemyLinkTypes[l.Type] {
			other := l.Other(id)
			reasons[other] = append(reasons[other], fmt.Sprintf("direct %s link", l.Type))
		}
	}
	for _, f := range feuds {
		if f.Resolved {
			continue
		}
		if opposing, ok := f.OpposingParty(id); ok {
			for _, m := range opposing.MemberIDs {
				reasons[m] = append(reasons[m], fmt.Sprintf("blood feud: %s", f.Cause))
			}
		}
	}
	for _, e := range events {
		if e.Settled || e.Polarity != karma.PolarityNegative {
			continue
		}
		switch id {
		case e.TargetID:
			reasons[e.ActorID] = append(reasons[e.ActorID], fmt.Sprintf("unsettled karma: %s (chapter %d)", e.Action, e.Chapter))
		case e.ActorID:
			reasons[e.TargetID] = append(reasons[e.TargetID], fmt.Sprintf("unsettled karma: %s (chapter %d)", e.Action, e.Chapter))
		}
	}

	return collectStandings(reasons, id)
}

// FindAllies returns everyone favorable to the character: direct edges in
// the ally type set and unpaid face debts owed to the character.
func FindAllies(g *graph.Graph, id ulid.ULID, debts []*feud.FaceDebt) []Standing {
	reasons := make(map[ulid.ULID][]string)

	for _, l := range g.Neighbors(id, graph.NeighborFilter{IncludeHidden: true}) {
		if allyLinkTypes[l.Type] {
			other := l.Other(id)
			reasons[other] = append(reasons[other], fmt.Sprintf("direct %s link", l.Type))
		}
	}
	for _, d := range debts {
		if d.Repaid {
			continue
		}
		if d.CreditorID == id {
			reasons[d.DebtorID] = append(reasons[d.DebtorID], fmt.Sprintf("owes a %s", d.Type))
		}
	}

	return collectStandings(reasons, id)
}

func collectStandings(reasons map[ulid.ULID][]string, self ulid.ULID) []Standing {
	out := make([]Standing, 0, len(reasons))
	for id, rs := range reasons {
		if id == self {
			continue
		}
		out = append(out, Standing{CharacterID: id, Reasons: rs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CharacterID.Compare(out[j].CharacterID) < 0 })
	return out
}
