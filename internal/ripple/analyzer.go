// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package ripple

import (
	"math"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/graph"
	"github.com/karmaloom/karmaloom/internal/karma"
)

// Config tunes ripple propagation.
type Config struct {
	// Threshold is the minimum final karma weight that ripples at all.
	Threshold int
	// MaxDegrees bounds propagation depth; hard-capped at 3.
	MaxDegrees int
	// DecayPerChapter shrinks unmanifested ripples each chapter.
	DecayPerChapter float64
}

// DefaultConfig returns the standard propagation tuning.
func DefaultConfig() Config {
	return Config{
		Threshold:       30,
		MaxDegrees:      3,
		DecayPerChapter: 0.99,
	}
}

// extremeEventWeight gates degree-3 propagation: only events this heavy
// echo three hops out.
const extremeEventWeight = 80

// hardDegreeCap is the absolute propagation depth limit.
const hardDegreeCap = 3

// Analyze performs one bounded multi-source BFS pass over the social graph
// for a settled-weight event and returns the produced ripples in
// deterministic breadth-first order, nearest degree first.
// Each character is visited at most once per event,
// so cycles in the graph cannot duplicate ripples. The union of affected
// ids is recorded back onto the event. Witnesses the graph does not reach
// get a degree-1 onlooker ripple of their own.
//
// Beyond degree 1, only edges in the strong link set propagate; when two
// equal-length strong paths reach the same character, whichever sorts first
// in the deterministic neighbor order supplies the recorded path.
func Analyze(evt *karma.Event, g *graph.Graph, cfg Config) []*Ripple {
	if evt.FinalWeight < cfg.Threshold {
		return nil
	}

	maxDegree := cfg.MaxDegrees
	if maxDegree > hardDegreeCap {
		maxDegree = hardDegreeCap
	}
	if maxDegree >= hardDegreeCap && evt.FinalWeight < extremeEventWeight {
		maxDegree = hardDegreeCap - 1
	}
	if maxDegree < 1 {
		return nil
	}

	visited := map[ulid.ULID]bool{
		evt.ActorID:  true,
		evt.TargetID: true,
	}

	var ripples []*Ripple

	// Degree 1: everyone directly tied to the target.
	frontier := expand(evt, g, cfg, evt.TargetID, nil, 1, visited, false)
	ripples = append(ripples, frontier...)

	// Witnesses saw the event firsthand; those the graph did not reach
	// still carry a degree-1 impression of it, as mere onlookers. They do
	// not relay it further.
	witnesses := append([]ulid.ULID(nil), evt.WitnessIDs...)
	sort.Slice(witnesses, func(i, j int) bool { return witnesses[i].Compare(witnesses[j]) < 0 })
	for _, w := range witnesses {
		if visited[w] {
			continue
		}
		visited[w] = true
		path := []Hop{{CharacterID: w, LinkType: graph.LinkAcquaintance}}
		ripples = append(ripples, newRipple(evt, cfg, w, path, 1, graph.LinkAcquaintance))
	}

	// Degree 2+: only strong links carry the grievance further.
	for degree := 2; degree <= maxDegree; degree++ {
		var next []*Ripple
		for _, r := range frontier {
			next = append(next, expand(evt, g, cfg, r.CharacterID, r.Path, degree, visited, true)...)
		}
		ripples = append(ripples, next...)
		frontier = next
	}

	affected := make([]ulid.ULID, 0, len(ripples))
	for _, r := range ripples {
		affected = append(affected, r.CharacterID)
	}
	evt.RippleAffectedIDs = affected
	return ripples
}

// expand enumerates the neighbors of one frontier character and creates
// ripples for the unvisited ones.
func expand(evt *karma.Event, g *graph.Graph, cfg Config, from ulid.ULID, basePath []Hop, degree int, visited map[ulid.ULID]bool, strongOnly bool) []*Ripple {
	var out []*Ripple
	for _, link := range g.Neighbors(from, graph.NeighborFilter{}) {
		if strongOnly && !link.Type.IsStrong() {
			continue
		}
		other := link.Other(from)
		if visited[other] {
			continue
		}
		visited[other] = true

		path := make([]Hop, 0, len(basePath)+1)
		path = append(path, basePath...)
		path = append(path, Hop{CharacterID: other, LinkType: link.Type})

		out = append(out, newRipple(evt, cfg, other, path, degree, link.Type))
	}
	return out
}

func newRipple(evt *karma.Event, cfg Config, characterID ulid.ULID, path []Hop, degree int, linkType graph.LinkType) *Ripple {
	strength := linkType.PropagationWeight()
	degreeMult := 1.0 / float64(degree+1)
	sign := float64(evt.Polarity.Sign())
	change := int(math.Floor(float64(evt.FinalWeight) * strength * degreeMult * sign * 0.5))

	threat := ThreatLevelFor(change)
	becomesThreat := evt.Polarity == karma.PolarityNegative && change <= -20

	return &Ripple{
		ID:                ulid.Make(),
		EventID:           evt.ID,
		NovelID:           evt.NovelID,
		CharacterID:       characterID,
		Path:              path,
		Degree:            degree,
		SentimentChange:   change,
		BecomesThreat:     becomesThreat,
		Threat:            threat,
		PotentialResponse: responseFor(evt.ID, characterID, change, threat),
		DecayFactor:       math.Pow(cfg.DecayPerChapter, float64(degree)),
		CreatedChapter:    evt.Chapter,
		CreatedAt:         time.Now(),
	}
}
