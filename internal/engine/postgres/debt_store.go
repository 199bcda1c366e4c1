// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/feud"
	"github.com/karmaloom/karmaloom/internal/karma"
)

// LoadDebts retrieves every face debt for a novel.
func (s *Store) LoadDebts(ctx context.Context, novelID ulid.ULID) ([]*feud.FaceDebt, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, debtor_id, debtor_name, creditor_id, creditor_name,
		       debt_type, weight, origin_event_id, repaid, repayment,
		       inheritable, inherited_from, created_at
		FROM face_debts WHERE novel_id = $1
		ORDER BY id
	`, novelID.String())
	if err != nil {
		return nil, oops.Code("DEBT_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	defer rows.Close()

	var debts []*feud.FaceDebt
	for rows.Next() {
		var (
			d             feud.FaceDebt
			id            string
			debtorID      string
			creditorID    string
			debtType      string
			originID      string
			inheritedFrom *string
			repayment     []byte
		)
		err := rows.Scan(&id, &debtorID, &d.DebtorName, &creditorID, &d.CreditorName,
			&debtType, &d.Weight, &originID, &d.Repaid, &repayment,
			&d.Inheritable, &inheritedFrom, &d.CreatedAt)
		if err != nil {
			return nil, oops.Code("DEBT_SCAN_FAILED").Wrap(err)
		}
		if d.ID, err = parseULID(id, "id"); err != nil {
			return nil, err
		}
		if d.DebtorID, err = parseULID(debtorID, "debtor_id"); err != nil {
			return nil, err
		}
		if d.CreditorID, err = parseULID(creditorID, "creditor_id"); err != nil {
			return nil, err
		}
		if d.OriginEventID, err = parseULID(originID, "origin_event_id"); err != nil {
			return nil, err
		}
		if inheritedFrom != nil {
			if d.InheritedFrom, err = parseULID(*inheritedFrom, "inherited_from"); err != nil {
				return nil, err
			}
		}
		d.NovelID = novelID
		d.Type = karma.DebtType(debtType)
		if err := unmarshalJSON(repayment, &d.Repayment, "repayment"); err != nil {
			return nil, err
		}
		debts = append(debts, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("DEBT_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return debts, nil
}

// SaveDebt upserts a face debt by id.
func (s *Store) SaveDebt(ctx context.Context, novelID ulid.ULID, d *feud.FaceDebt) error {
	repayment, err := marshalJSON(d.Repayment, "repayment")
	if err != nil {
		return err
	}
	var inheritedFrom *string
	if d.InheritedFrom != (ulid.ULID{}) {
		from := d.InheritedFrom.String()
		inheritedFrom = &from
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO face_debts (
			id, novel_id, debtor_id, debtor_name, creditor_id, creditor_name,
			debt_type, weight, origin_event_id, repaid, repayment,
			inheritable, inherited_from, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			repaid = $10, repayment = $11, inherited_from = $13
	`, d.ID.String(), novelID.String(), d.DebtorID.String(), d.DebtorName,
		d.CreditorID.String(), d.CreditorName, string(d.Type), d.Weight,
		d.OriginEventID.String(), d.Repaid, repayment, d.Inheritable,
		inheritedFrom, d.CreatedAt)
	if err != nil {
		return oops.Code("DEBT_SAVE_FAILED").With("id", d.ID.String()).Wrap(err)
	}
	return nil
}
