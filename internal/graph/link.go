// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package graph holds the social relationship graph: typed, directed edges
// between character nodes carrying strength and sentiment.
package graph

import (
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// LinkType identifies a kind of relationship edge.
type LinkType string

// Family links.
const (
	LinkParent     LinkType = "parent"
	LinkChild      LinkType = "child"
	LinkSibling    LinkType = "sibling"
	LinkSpouse     LinkType = "spouse"
	LinkAncestor   LinkType = "ancestor"
	LinkDescendant LinkType = "descendant"
	LinkClanElder  LinkType = "clan_elder"
	LinkClanMember LinkType = "clan_member"
)

// Cultivation links.
const (
	LinkMaster           LinkType = "master"
	LinkDisciple         LinkType = "disciple"
	LinkMartialSibling   LinkType = "martial_sibling"
	LinkDaoCompanion     LinkType = "dao_companion"
	LinkSectLeader       LinkType = "sect_leader"
	LinkSectMember       LinkType = "sect_member"
	LinkSectElder        LinkType = "sect_elder"
	LinkFellowCultivator LinkType = "fellow_cultivator"
)

// Political links.
const (
	LinkAlly        LinkType = "ally"
	LinkEnemy       LinkType = "enemy"
	LinkRival       LinkType = "rival"
	LinkSubordinate LinkType = "subordinate"
	LinkSuperior    LinkType = "superior"
	LinkVassal      LinkType = "vassal"
	LinkBenefactor  LinkType = "benefactor"
	LinkDebtor      LinkType = "debtor"
)

// Personal links.
const (
	LinkFriend       LinkType = "friend"
	LinkSwornBrother LinkType = "sworn_brother"
	LinkLover        LinkType = "lover"
	LinkAcquaintance LinkType = "acquaintance"
	LinkSavior       LinkType = "savior"
	LinkBetrayer     LinkType = "betrayer"
)

// ErrInvalidLinkType indicates an unrecognized link type.
var ErrInvalidLinkType = errors.New("invalid link type")

// LinkCategory groups link types.
type LinkCategory string

// Link categories.
const (
	CategoryFamily      LinkCategory = "family"
	CategoryCultivation LinkCategory = "cultivation"
	CategoryPolitical   LinkCategory = "political"
	CategoryPersonal    LinkCategory = "personal"
)

// linkCatalog maps every link type to its category.
var linkCatalog = map[LinkType]LinkCategory{
	LinkParent: CategoryFamily, LinkChild: CategoryFamily,
	LinkSibling: CategoryFamily, LinkSpouse: CategoryFamily,
	LinkAncestor: CategoryFamily, LinkDescendant: CategoryFamily,
	LinkClanElder: CategoryFamily, LinkClanMember: CategoryFamily,

	LinkMaster: CategoryCultivation, LinkDisciple: CategoryCultivation,
	LinkMartialSibling: CategoryCultivation, LinkDaoCompanion: CategoryCultivation,
	LinkSectLeader: CategoryCultivation, LinkSectMember: CategoryCultivation,
	LinkSectElder: CategoryCultivation, LinkFellowCultivator: CategoryCultivation,

	LinkAlly: CategoryPolitical, LinkEnemy: CategoryPolitical,
	LinkRival: CategoryPolitical, LinkSubordinate: CategoryPolitical,
	LinkSuperior: CategoryPolitical, LinkVassal: CategoryPolitical,
	LinkBenefactor: CategoryPolitical, LinkDebtor: CategoryPolitical,

	LinkFriend: CategoryPersonal, LinkSwornBrother: CategoryPersonal,
	LinkLover: CategoryPersonal, LinkAcquaintance: CategoryPersonal,
	LinkSavior: CategoryPersonal, LinkBetrayer: CategoryPersonal,
}

// Validate checks that the link type is known.
func (t LinkType) Validate() error {
	if _, ok := linkCatalog[t]; !ok {
		return ErrInvalidLinkType
	}
	return nil
}

// Category returns the link type's category.
func (t LinkType) Category() (LinkCategory, error) {
	c, ok := linkCatalog[t]
	if !ok {
		return "", ErrInvalidLinkType
	}
	return c, nil
}

// strongLinks propagate ripples beyond degree 1. The cutoff is a tunable
// constant, not a law: strong ties carry news of a grievance further than
// casual ones.
var strongLinks = map[LinkType]bool{
	LinkParent:         true,
	LinkChild:          true,
	LinkSibling:        true,
	LinkSpouse:         true,
	LinkMaster:         true,
	LinkDisciple:       true,
	LinkMartialSibling: true,
	LinkDaoCompanion:   true,
}

// weakLinks carry the least propagation weight.
var weakLinks = map[LinkType]bool{
	LinkAcquaintance:     true,
	LinkFellowCultivator: true,
	LinkRival:            true,
	LinkDebtor:           true,
	LinkBetrayer:         true,
}

// IsStrong reports whether the link type belongs to the strong set that
// admits multi-degree ripple propagation.
func (t LinkType) IsStrong() bool {
	return strongLinks[t]
}

// PropagationWeight returns the relationship strength factor used by ripple
// sentiment math: 1.0 strong, 0.6 moderate, 0.3 weak.
func (t LinkType) PropagationWeight() float64 {
	switch {
	case strongLinks[t]:
		return 1.0
	case weakLinks[t]:
		return 0.3
	default:
		return 0.6
	}
}

// LinkStrength grades how firmly a link binds.
type LinkStrength string

// Link strengths.
const (
	StrengthWeak        LinkStrength = "weak"
	StrengthModerate    LinkStrength = "moderate"
	StrengthStrong      LinkStrength = "strong"
	StrengthUnbreakable LinkStrength = "unbreakable"
)

// Validate checks that the strength is a known grade.
func (s LinkStrength) Validate() error {
	switch s {
	case StrengthWeak, StrengthModerate, StrengthStrong, StrengthUnbreakable:
		return nil
	default:
		return errors.New("invalid link strength")
	}
}

// SentimentLabel buckets a signed sentiment score.
type SentimentLabel string

// Sentiment labels from hostile to devoted.
const (
	SentimentHatred  SentimentLabel = "hatred"
	SentimentHostile SentimentLabel = "hostile"
	SentimentCold    SentimentLabel = "cold"
	SentimentNeutral SentimentLabel = "neutral"
	SentimentWarm    SentimentLabel = "warm"
	SentimentDevoted SentimentLabel = "devoted"
)

// LabelForSentiment buckets a score in [-100,100].
func LabelForSentiment(score int) SentimentLabel {
	switch {
	case score <= -70:
		return SentimentHatred
	case score <= -30:
		return SentimentHostile
	case score < 0:
		return SentimentCold
	case score < 30:
		return SentimentNeutral
	case score < 70:
		return SentimentWarm
	default:
		return SentimentDevoted
	}
}

// Link is a directed edge from Source to Target. A logical relationship may
// be represented as two independent directed edges with different semantics;
// nothing forces symmetry.
type Link struct {
	SourceID ulid.ULID
	TargetID ulid.ULID
	Type     LinkType
	Strength LinkStrength

	// Sentiment is how Source feels about Target, clamped to [-100,100].
	Sentiment int

	MutualKarmaBalance int
	UnsettledKarma     int

	EstablishedChapter     int
	LastInteractionChapter int

	Inherited     bool
	InheritedFrom string

	Hidden bool

	UpdatedAt time.Time
}

// SentimentLabel returns the bucketed label for the link's sentiment.
func (l *Link) SentimentLabel() SentimentLabel {
	return LabelForSentiment(l.Sentiment)
}

// AdjustSentiment shifts the sentiment by delta, clamped to [-100,100].
func (l *Link) AdjustSentiment(delta int) {
	l.Sentiment = clampSentiment(l.Sentiment + delta)
	l.UpdatedAt = time.Now()
}

func clampSentiment(v int) int {
	if v > 100 {
		return 100
	}
	if v < -100 {
		return -100
	}
	return v
}

// Validate checks the link's structural invariants.
func (l *Link) Validate() error {
	if l.SourceID.IsZero() || l.TargetID.IsZero() {
		return errors.New("link endpoints cannot be zero")
	}
	if l.SourceID == l.TargetID {
		return errors.New("link cannot be reflexive")
	}
	if err := l.Type.Validate(); err != nil {
		return err
	}
	if err := l.Strength.Validate(); err != nil {
		return err
	}
	if l.Sentiment < -100 || l.Sentiment > 100 {
		return errors.New("sentiment out of range")
	}
	return nil
}
