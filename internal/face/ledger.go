// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package face

import (
	"errors"
	"sort"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/karma"
)

// ErrCharacterNotFound indicates a character reference that could not be
// resolved to a known roster entry.
var ErrCharacterNotFound = errors.New("character not found")

// NameResolver maps a character id to its display name. Profiles are
// created lazily, so the ledger needs a roster lookup for first contact.
type NameResolver interface {
	ResolveName(id ulid.ULID) (string, bool)
}

// Ledger holds every character's FaceProfile for one novel. It is not safe
// for concurrent use; the engine serializes writes per novel.
type Ledger struct {
	profiles map[ulid.ULID]*Profile
	resolver NameResolver
}

// NewLedger creates an empty ledger backed by the given roster resolver.
func NewLedger(resolver NameResolver) *Ledger {
	return &Ledger{
		profiles: make(map[ulid.ULID]*Profile),
		resolver: resolver,
	}
}

// Restore seeds the ledger with previously persisted profiles.
func (l *Ledger) Restore(profiles []*Profile) {
	for _, p := range profiles {
		l.profiles[p.CharacterID] = p
	}
}

// Profile returns the profile for a character, or nil if none exists yet.
func (l *Ledger) Profile(id ulid.ULID) *Profile {
	return l.profiles[id]
}

// Profiles returns all profiles sorted by character id for deterministic
// iteration.
func (l *Ledger) Profiles() []*Profile {
	out := make([]*Profile, 0, len(l.profiles))
	for _, p := range l.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CharacterID.Compare(out[j].CharacterID) < 0
	})
	return out
}

// Ensure returns the profile for a character, creating it at tier nobody on
// first karmic contact. The roster is consulted first; fallbackName covers
// characters the roster has never seen, which is how a roster derived from
// recorded events learns names in the first place. Fails with
// ErrCharacterNotFound when neither source supplies a display name.
func (l *Ledger) Ensure(id ulid.ULID, fallbackName string) (*Profile, error) {
	if p, ok := l.profiles[id]; ok {
		return p, nil
	}
	name, ok := l.resolver.ResolveName(id)
	if !ok {
		name = fallbackName
	}
	if name == "" {
		return nil, oops.Code("CHARACTER_NOT_FOUND").With("character_id", id.String()).Wrap(ErrCharacterNotFound)
	}
	p := NewProfile(id, name)
	l.profiles[id] = p
	return p, nil
}

func (l *Ledger) ensure(id ulid.ULID) (*Profile, error) {
	return l.Ensure(id, "")
}

// AddFace adds amount to the named category, updates TotalFace and tier,
// and appends an Accomplishment (amount > 0) or Shame (amount < 0) record.
// A zero amount only touches the profile's timestamps.
func (l *Ledger) AddFace(id ulid.ULID, amount int, category karma.FaceCategory, chapter int, description string) (*Profile, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	p, err := l.ensure(id)
	if err != nil {
		return nil, err
	}
	p.Categories[category] += amount
	switch {
	case amount > 0:
		p.Accomplishments = append(p.Accomplishments, Accomplishment{
			Description: description,
			Category:    category,
			Amount:      amount,
			Chapter:     chapter,
		})
	case amount < 0:
		p.Shames = append(p.Shames, Shame{
			Description: description,
			Category:    category,
			Amount:      amount,
			Chapter:     chapter,
		})
	}
	p.recompute()
	return p, nil
}

// UpdateKarmaBalance adjusts the signed running balance and the matching
// unsigned total. Called twice per karma event, once per participant.
func (l *Ledger) UpdateKarmaBalance(id ulid.ULID, delta int) (*Profile, error) {
	p, err := l.ensure(id)
	if err != nil {
		return nil, err
	}
	p.KarmaBalance += delta
	if delta >= 0 {
		p.PositiveKarmaTotal += delta
	} else {
		p.NegativeKarmaTotal += -delta
	}
	p.recompute()
	return p, nil
}

// GrantTitle appends an honorific to a character's profile.
func (l *Ledger) GrantTitle(id ulid.ULID, name string, chapter int) (*Profile, error) {
	p, err := l.ensure(id)
	if err != nil {
		return nil, err
	}
	p.Titles = append(p.Titles, Title{Name: name, Chapter: chapter})
	p.recompute()
	return p, nil
}

// TotalFace returns a character's total Face, zero when no profile exists.
// Used by analytics without forcing profile creation.
func (l *Ledger) TotalFace(id ulid.ULID) int {
	if p, ok := l.profiles[id]; ok {
		return p.TotalFace
	}
	return 0
}
