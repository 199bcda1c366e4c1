// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package feud

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/karma"
)

// Repayment records how a Face debt was discharged.
type Repayment struct {
	Chapter     int       `json:"chapter"`
	EventID     ulid.ULID `json:"event_id"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

// FaceDebt is an owed obligation from debtor to creditor, created by a
// positive karma event and outstanding until repaid. Terminal once repaid.
type FaceDebt struct {
	ID      ulid.ULID
	NovelID ulid.ULID

	DebtorID     ulid.ULID
	DebtorName   string
	CreditorID   ulid.ULID
	CreditorName string

	Type   karma.DebtType
	Weight int

	OriginEventID ulid.ULID

	Repaid    bool
	Repayment *Repayment

	// Inheritable debts pass to descendants when the debtor dies unpaid.
	Inheritable   bool
	InheritedFrom ulid.ULID

	CreatedAt time.Time
}

// NewFaceDebt seeds a debt from an originating event and its computed debt
// suggestion.
func NewFaceDebt(novelID, debtorID, creditorID ulid.ULID, debtorName, creditorName string, debtType karma.DebtType, weight int, originEventID ulid.ULID) *FaceDebt {
	return &FaceDebt{
		ID:            ulid.Make(),
		NovelID:       novelID,
		DebtorID:      debtorID,
		DebtorName:    debtorName,
		CreditorID:    creditorID,
		CreditorName:  creditorName,
		Type:          debtType,
		Weight:        weight,
		OriginEventID: originEventID,
		Inheritable:   debtType == karma.DebtLife,
		CreatedAt:     time.Now(),
	}
}

// Repay discharges the debt. Idempotent: a second call is a no-op returning
// false so the caller can log the double repayment.
func (d *FaceDebt) Repay(chapter int, eventID ulid.ULID, description string) bool {
	if d.Repaid {
		return false
	}
	d.Repaid = true
	d.Repayment = &Repayment{
		Chapter:     chapter,
		EventID:     eventID,
		Description: description,
		At:          time.Now(),
	}
	return true
}
