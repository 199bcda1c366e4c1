// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package karma

import "math"

// ModifierType identifies a contextual weight modifier.
type ModifierType string

// Modifier types, in the fixed order they are applied.
const (
	ModifierPowerDifference   ModifierType = "power_difference"
	ModifierProvocation       ModifierType = "provocation"
	ModifierPublicVisibility  ModifierType = "public_visibility"
	ModifierTargetInnocence   ModifierType = "target_innocence"
	ModifierJustification     ModifierType = "justification"
	ModifierClanInvolvement   ModifierType = "clan_involvement"
	ModifierSectInvolvement   ModifierType = "sect_involvement"
	ModifierTreasureValue     ModifierType = "treasure_value"
	ModifierCultivationImpact ModifierType = "cultivation_impact"
	ModifierBetrayalDepth     ModifierType = "betrayal_depth"
)

// Modifier records one applied contextual multiplier.
type Modifier struct {
	Type       ModifierType `json:"type"`
	Multiplier float64      `json:"multiplier"`
	Reason     string       `json:"reason"`
}

// Context carries the narrative circumstances of an action. The zero value
// applies no modifiers.
type Context struct {
	// PowerDifference is actor realm minus target realm. Positive means
	// the actor punched down (bully bonus), negative means punched up.
	PowerDifference int
	// WasProvoked means the target provoked the action.
	WasProvoked bool
	// WasPublic means the action happened before witnesses.
	WasPublic bool
	// TargetInnocent means the target had no part in the grievance.
	TargetInnocent bool
	// WasJustified means the action redressed a legitimate grievance.
	WasJustified bool
	// ClanInvolved means a clan's standing is implicated.
	ClanInvolved bool
	// SectInvolved means a sect's standing is implicated.
	SectInvolved bool
	// TreasureValue is the worth of goods taken or given, in spirit stones.
	TreasureValue int
	// CultivationImpact means the action touched someone's cultivation base.
	CultivationImpact bool
	// DeepBetrayal means the betrayed trust was of the closest kind
	// (master, family, dao companion).
	DeepBetrayal bool
}

// Result is the fully computed karmic weight of an action.
type Result struct {
	Action      ActionType
	Severity    Severity
	BaseWeight  int
	FinalWeight int
	Polarity    Polarity
	Modifiers   []Modifier
}

// ComputeWeight computes the karmic weight of an action. The base weight and
// polarity come from the static action table, severity applies its
// multiplier, and each context modifier applies independently and
// multiplicatively in a fixed order. The final weight is rounded and clamped
// to [0,100].
func ComputeWeight(action ActionType, severity Severity, kctx Context) (Result, error) {
	base, err := action.BaseWeight()
	if err != nil {
		return Result{}, err
	}
	polarity, err := action.PolarityOf()
	if err != nil {
		return Result{}, err
	}
	sevMult, err := severity.Multiplier()
	if err != nil {
		return Result{}, err
	}

	mods := contextModifiers(kctx)
	weight := float64(base) * sevMult
	for _, m := range mods {
		weight *= m.Multiplier
	}

	final := int(math.Round(weight))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	return Result{
		Action:      action,
		Severity:    severity,
		BaseWeight:  base,
		FinalWeight: final,
		Polarity:    polarity,
		Modifiers:   mods,
	}, nil
}

// contextModifiers derives the applied modifier list from context flags.
// Order is fixed so the modifier log is reproducible.
func contextModifiers(kctx Context) []Modifier {
	var mods []Modifier

	switch {
	case kctx.PowerDifference > 0:
		mods = append(mods, Modifier{ModifierPowerDifference, 1.3, "actor struck a weaker opponent"})
	case kctx.PowerDifference < 0:
		mods = append(mods, Modifier{ModifierPowerDifference, 0.8, "actor struck above their realm"})
	}
	if kctx.WasProvoked {
		mods = append(mods, Modifier{ModifierProvocation, 0.7, "target provoked the action"})
	}
	if kctx.WasPublic {
		mods = append(mods, Modifier{ModifierPublicVisibility, 1.4, "action witnessed in public"})
	}
	if kctx.TargetInnocent {
		mods = append(mods, Modifier{ModifierTargetInnocence, 1.5, "target was uninvolved in the grievance"})
	}
	if kctx.WasJustified {
		mods = append(mods, Modifier{ModifierJustification, 0.6, "action redressed a legitimate grievance"})
	}
	if kctx.ClanInvolved {
		mods = append(mods, Modifier{ModifierClanInvolvement, 1.8, "a clan's standing is implicated"})
	}
	if kctx.SectInvolved {
		mods = append(mods, Modifier{ModifierSectInvolvement, 1.6, "a sect's standing is implicated"})
	}
	if m, ok := treasureModifier(kctx.TreasureValue); ok {
		mods = append(mods, m)
	}
	if kctx.CultivationImpact {
		mods = append(mods, Modifier{ModifierCultivationImpact, 1.7, "cultivation base was affected"})
	}
	if kctx.DeepBetrayal {
		mods = append(mods, Modifier{ModifierBetrayalDepth, 2.0, "betrayal of the closest trust"})
	}
	return mods
}

// treasureModifier tiers the treasure-value multiplier from x1.0 to x2.0.
// Values below the first tier produce no modifier entry.
func treasureModifier(value int) (Modifier, bool) {
	var mult float64
	var reason string
	switch {
	case value >= 10000:
		mult, reason = 2.0, "a legendary treasure changed hands"
	case value >= 5000:
		mult, reason = 1.8, "a precious treasure changed hands"
	case value >= 1000:
		mult, reason = 1.5, "a valuable treasure changed hands"
	case value >= 100:
		mult, reason = 1.2, "goods of modest value changed hands"
	default:
		return Modifier{}, false
	}
	return Modifier{ModifierTreasureValue, mult, reason}, true
}

// Coefficients for the sibling delta functions. Documented here rather than
// scattered: Face moves slower than karma, and sentiment swings harder
// against wrongdoers than it warms toward benefactors.
const (
	actorFaceCoeff     = 0.6
	targetFaceCoeff    = 0.4
	positiveSentCoeff  = 0.6
	negativeSentCoeff  = 0.8
	witnessPublicBonus = 1.2
)

// FaceChange is the Face delta a computed karma weight implies.
type FaceChange struct {
	ActorDelta  int
	TargetDelta int
	Category    FaceCategory
}

// ComputeFaceChange derives Face deltas from an already-computed weight.
// Callers pass the weight from ComputeWeight; this function never recomputes
// it. A negative action still earns the actor martial/political Face (fear
// is also Face) while the target loses Face; a positive action raises both,
// the actor more.
func ComputeFaceChange(weight int, polarity Polarity, action ActionType) (FaceChange, error) {
	category, err := action.FaceCategoryOf()
	if err != nil {
		return FaceChange{}, err
	}

	actor := int(math.Round(float64(weight) * actorFaceCoeff))
	target := int(math.Round(float64(weight) * targetFaceCoeff))
	switch polarity {
	case PolarityNegative:
		target = -target
	case PolarityPositive:
		// target keeps a smaller positive share
	default:
		// neutral actions move the actor's Face only
		target = 0
	}
	return FaceChange{ActorDelta: actor, TargetDelta: target, Category: category}, nil
}

// ComputeSentimentChange derives the target's sentiment delta toward the
// actor from an already-computed weight. Public actions cut or warm deeper.
// The result is clamped to [-100,100].
func ComputeSentimentChange(weight int, polarity Polarity, wasPublic bool) int {
	var delta float64
	switch polarity {
	case PolarityPositive:
		delta = float64(weight) * positiveSentCoeff
	case PolarityNegative:
		delta = -float64(weight) * negativeSentCoeff
	default:
		return 0
	}
	if wasPublic {
		delta *= witnessPublicBonus
	}
	d := int(math.Round(delta))
	if d > 100 {
		d = 100
	}
	if d < -100 {
		d = -100
	}
	return d
}
