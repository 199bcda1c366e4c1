// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package karma computes karmic weight, polarity, and downstream deltas
// for actions between characters. All functions are pure: identical
// inputs always produce identical outputs, so event replay is idempotent.
package karma

import "errors"

// ActionType identifies a kind of karmic action between two characters.
type ActionType string

// Karmic action types.
const (
	ActionKill               ActionType = "kill"
	ActionSpare              ActionType = "spare"
	ActionHumiliate          ActionType = "humiliate"
	ActionHonor              ActionType = "honor"
	ActionBetray             ActionType = "betray"
	ActionSave               ActionType = "save"
	ActionSteal              ActionType = "steal"
	ActionGift               ActionType = "gift"
	ActionDefeat             ActionType = "defeat"
	ActionSubmit             ActionType = "submit"
	ActionOffend             ActionType = "offend"
	ActionProtect            ActionType = "protect"
	ActionAvenge             ActionType = "avenge"
	ActionAbandon            ActionType = "abandon"
	ActionEnslave            ActionType = "enslave"
	ActionLiberate           ActionType = "liberate"
	ActionCurse              ActionType = "curse"
	ActionBless              ActionType = "bless"
	ActionDestroySect        ActionType = "destroy_sect"
	ActionCrippleCultivation ActionType = "cripple_cultivation"
	ActionRestoreCultivation ActionType = "restore_cultivation"
	ActionExterminateClan    ActionType = "exterminate_clan"
	ActionElevateStatus      ActionType = "elevate_status"
)

// ErrInvalidActionType indicates an unrecognized action type.
var ErrInvalidActionType = errors.New("invalid action type")

// Polarity is the fixed moral direction of an action type.
type Polarity string

// Polarities.
const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	// PolarityNeutral is used only by context-dependent actions (avenge).
	PolarityNeutral Polarity = "neutral"
)

// Sign returns +1, -1, or 0 for the polarity.
func (p Polarity) Sign() int {
	switch p {
	case PolarityPositive:
		return 1
	case PolarityNegative:
		return -1
	default:
		return 0
	}
}

// actionProfile is one row of the static action table.
type actionProfile struct {
	baseWeight int
	polarity   Polarity
	category   FaceCategory
}

// actionTable maps every action type to its base weight (15..100), fixed
// polarity, and the Face category the action primarily moves.
var actionTable = map[ActionType]actionProfile{
	ActionKill:               {80, PolarityNegative, FaceMartial},
	ActionSpare:              {40, PolarityPositive, FaceMoral},
	ActionHumiliate:          {40, PolarityNegative, FaceMoral},
	ActionHonor:              {30, PolarityPositive, FacePolitical},
	ActionBetray:             {70, PolarityNegative, FaceMoral},
	ActionSave:               {60, PolarityPositive, FaceMoral},
	ActionSteal:              {35, PolarityNegative, FaceWealth},
	ActionGift:               {25, PolarityPositive, FaceWealth},
	ActionDefeat:             {30, PolarityNegative, FaceMartial},
	ActionSubmit:             {25, PolarityNegative, FacePolitical},
	ActionOffend:             {15, PolarityNegative, FaceMoral},
	ActionProtect:            {45, PolarityPositive, FaceMoral},
	ActionAvenge:             {60, PolarityNeutral, FaceMartial},
	ActionAbandon:            {45, PolarityNegative, FaceMoral},
	ActionEnslave:            {75, PolarityNegative, FacePolitical},
	ActionLiberate:           {65, PolarityPositive, FaceMoral},
	ActionCurse:              {50, PolarityNegative, FaceMysterious},
	ActionBless:              {35, PolarityPositive, FaceMysterious},
	ActionDestroySect:        {95, PolarityNegative, FaceMartial},
	ActionCrippleCultivation: {85, PolarityNegative, FaceMartial},
	ActionRestoreCultivation: {80, PolarityPositive, FaceMysterious},
	ActionExterminateClan:    {100, PolarityNegative, FaceMartial},
	ActionElevateStatus:      {55, PolarityPositive, FacePolitical},
}

// String returns the string representation of the action type.
func (a ActionType) String() string {
	return string(a)
}

// Validate checks that the action type exists in the action table.
func (a ActionType) Validate() error {
	if _, ok := actionTable[a]; !ok {
		return ErrInvalidActionType
	}
	return nil
}

// PolarityOf returns the fixed polarity of the action type.
// The polarity is derived solely from the action type; "avenge" is the
// single neutral entry and is resolved against context by the caller.
func (a ActionType) PolarityOf() (Polarity, error) {
	p, ok := actionTable[a]
	if !ok {
		return "", ErrInvalidActionType
	}
	return p.polarity, nil
}

// BaseWeight returns the static base weight of the action type.
func (a ActionType) BaseWeight() (int, error) {
	p, ok := actionTable[a]
	if !ok {
		return 0, ErrInvalidActionType
	}
	return p.baseWeight, nil
}

// FaceCategoryOf returns the Face category the action primarily affects.
func (a ActionType) FaceCategoryOf() (FaceCategory, error) {
	p, ok := actionTable[a]
	if !ok {
		return "", ErrInvalidActionType
	}
	return p.category, nil
}

// ValidActionTypes returns all action types in stable (sorted) order.
func ValidActionTypes() []ActionType {
	return []ActionType{
		ActionAbandon, ActionAvenge, ActionBetray, ActionBless,
		ActionCrippleCultivation, ActionCurse, ActionDefeat,
		ActionDestroySect, ActionElevateStatus, ActionEnslave,
		ActionExterminateClan, ActionGift, ActionHonor, ActionHumiliate,
		ActionKill, ActionLiberate, ActionOffend, ActionProtect,
		ActionRestoreCultivation, ActionSave, ActionSpare, ActionSteal,
		ActionSubmit,
	}
}

// FaceCategory names one of the six reputation categories.
type FaceCategory string

// Face categories.
const (
	FaceMartial    FaceCategory = "martial"
	FaceScholarly  FaceCategory = "scholarly"
	FacePolitical  FaceCategory = "political"
	FaceMoral      FaceCategory = "moral"
	FaceMysterious FaceCategory = "mysterious"
	FaceWealth     FaceCategory = "wealth"
)

// ErrInvalidFaceCategory indicates an unrecognized face category.
var ErrInvalidFaceCategory = errors.New("invalid face category")

// Validate checks that the category is one of the six known categories.
func (c FaceCategory) Validate() error {
	switch c {
	case FaceMartial, FaceScholarly, FacePolitical, FaceMoral, FaceMysterious, FaceWealth:
		return nil
	default:
		return ErrInvalidFaceCategory
	}
}

// FaceCategories returns the six categories in stable order.
func FaceCategories() []FaceCategory {
	return []FaceCategory{
		FaceMartial, FaceScholarly, FacePolitical,
		FaceMoral, FaceMysterious, FaceWealth,
	}
}
