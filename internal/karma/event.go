// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package karma

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Settlement classifies how a karma event was eventually settled.
type Settlement string

// Settlement states.
const (
	SettlementUnsettled Settlement = "unsettled"
	SettlementAvenged   Settlement = "avenged"
	SettlementForgiven  Settlement = "forgiven"
	SettlementBalanced  Settlement = "balanced"
	SettlementInherited Settlement = "inherited"
)

// Validate checks that the settlement is a known state.
func (s Settlement) Validate() error {
	switch s {
	case SettlementUnsettled, SettlementAvenged, SettlementForgiven, SettlementBalanced, SettlementInherited:
		return nil
	default:
		return &ValidationError{Field: "settlement", Message: "unknown settlement state"}
	}
}

// Event is an immutable historical karmic fact between two characters.
// After creation only the settlement fields may change.
type Event struct {
	ID          ulid.ULID
	NovelID     ulid.ULID
	ActorID     ulid.ULID
	ActorName   string
	TargetID    ulid.ULID
	TargetName  string
	Action      ActionType
	Severity    Severity
	BaseWeight  int
	FinalWeight int
	Polarity    Polarity
	Modifiers   []Modifier
	Chapter     int
	Description string
	WitnessIDs  []ulid.ULID

	Settled        bool
	SettlementType Settlement
	SettledChapter int

	// RippleAffectedIDs is the union of characters reached by ripple
	// propagation for this event, recorded for later lookup.
	RippleAffectedIDs []ulid.ULID

	CreatedAt time.Time
}

// NewEvent creates a settled-weight event from a computed karma result.
func NewEvent(novelID, actorID, targetID ulid.ULID, actorName, targetName string, res Result, chapter int, description string) (*Event, error) {
	e := &Event{
		ID:             ulid.Make(),
		NovelID:        novelID,
		ActorID:        actorID,
		ActorName:      actorName,
		TargetID:       targetID,
		TargetName:     targetName,
		Action:         res.Action,
		Severity:       res.Severity,
		BaseWeight:     res.BaseWeight,
		FinalWeight:    res.FinalWeight,
		Polarity:       res.Polarity,
		Modifiers:      res.Modifiers,
		Chapter:        chapter,
		Description:    description,
		SettlementType: SettlementUnsettled,
		CreatedAt:      time.Now(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the event's structural invariants.
func (e *Event) Validate() error {
	if e.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if e.NovelID.IsZero() {
		return &ValidationError{Field: "novel_id", Message: "cannot be zero"}
	}
	if e.ActorID.IsZero() {
		return &ValidationError{Field: "actor_id", Message: "cannot be zero"}
	}
	if e.TargetID.IsZero() {
		return &ValidationError{Field: "target_id", Message: "cannot be zero"}
	}
	if err := e.Action.Validate(); err != nil {
		return err
	}
	if err := e.Severity.Validate(); err != nil {
		return err
	}
	if e.FinalWeight < 0 || e.FinalWeight > 100 {
		return &ValidationError{Field: "final_weight", Message: "must be in [0,100]"}
	}
	if e.Chapter < 0 {
		return &ValidationError{Field: "chapter", Message: "cannot be negative"}
	}
	return nil
}

// Settle marks the event settled. A second call is a no-op returning false
// so callers can log the double settlement without treating it as an error.
func (e *Event) Settle(settlement Settlement, chapter int) (bool, error) {
	if err := settlement.Validate(); err != nil {
		return false, err
	}
	if settlement == SettlementUnsettled {
		return false, &ValidationError{Field: "settlement", Message: "cannot settle to unsettled"}
	}
	if e.Settled {
		return false, nil
	}
	e.Settled = true
	e.SettlementType = settlement
	e.SettledChapter = chapter
	return true, nil
}

// Unsettled reports whether the event still awaits settlement.
func (e *Event) Unsettled() bool {
	return !e.Settled
}
