// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package karma

import "fmt"

// feudActions always warrant a blood feud regardless of weight.
var feudActions = map[ActionType]bool{
	ActionKill:               true,
	ActionExterminateClan:    true,
	ActionDestroySect:        true,
	ActionCrippleCultivation: true,
	ActionEnslave:            true,
}

// feudWeightThreshold is the weight above which any negative action
// warrants a feud even outside feudActions.
const feudWeightThreshold = 70

// FeudSuggestion is the advisory output of ShouldTriggerBloodFeud.
type FeudSuggestion struct {
	Trigger   bool
	Intensity int
	Reason    string
}

// ShouldTriggerBloodFeud advises whether a computed karma result warrants a
// blood feud. The decision is advisory: calling code decides whether to act.
func ShouldTriggerBloodFeud(res Result) FeudSuggestion {
	if res.Polarity != PolarityNegative {
		return FeudSuggestion{}
	}
	triggered := feudActions[res.Action] || res.FinalWeight >= feudWeightThreshold
	if !triggered {
		return FeudSuggestion{}
	}
	intensity := res.FinalWeight + 10
	if intensity > 100 {
		intensity = 100
	}
	reason := fmt.Sprintf("%s at weight %d is a grievance blood must answer", res.Action, res.FinalWeight)
	return FeudSuggestion{Trigger: true, Intensity: intensity, Reason: reason}
}

// DebtType classifies an owed obligation.
type DebtType string

// Debt types.
const (
	DebtLife      DebtType = "life_debt"
	DebtGratitude DebtType = "gratitude_debt"
	DebtFavor     DebtType = "favor_debt"
)

// debtActions maps debt-creating actions to the debt kind they create.
var debtActions = map[ActionType]DebtType{
	ActionSave:               DebtLife,
	ActionSpare:              DebtLife,
	ActionProtect:            DebtGratitude,
	ActionLiberate:           DebtGratitude,
	ActionRestoreCultivation: DebtGratitude,
	ActionGift:               DebtFavor,
	ActionElevateStatus:      DebtFavor,
}

// debtWeightThreshold gates trivial kindnesses out of the ledger.
const debtWeightThreshold = 30

// DebtSuggestion is the advisory output of ShouldCreateDebt.
type DebtSuggestion struct {
	Create bool
	Type   DebtType
	Weight int
	Reason string
}

// ShouldCreateDebt advises whether a computed karma result creates a Face
// debt from target to actor. Advisory only.
func ShouldCreateDebt(res Result) DebtSuggestion {
	if res.Polarity != PolarityPositive {
		return DebtSuggestion{}
	}
	debtType, ok := debtActions[res.Action]
	if !ok || res.FinalWeight < debtWeightThreshold {
		return DebtSuggestion{}
	}
	reason := fmt.Sprintf("%s at weight %d leaves a %s unpaid", res.Action, res.FinalWeight, debtType)
	return DebtSuggestion{Create: true, Type: debtType, Weight: res.FinalWeight, Reason: reason}
}
