// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package feud_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/feud"
	"github.com/karmaloom/karmaloom/internal/karma"
)

func TestFaceDebt_Repay(t *testing.T) {
	d := feud.NewFaceDebt(ulid.Make(), ulid.Make(), ulid.Make(), "Han Shan", "Wei Long", karma.DebtLife, 60, ulid.Make())
	assert.True(t, d.Inheritable, "life debts pass to descendants")
	assert.False(t, d.Repaid)

	changed := d.Repay(42, ulid.Make(), "shielded his savior from the tribulation")
	require.True(t, changed)
	assert.True(t, d.Repaid)
	require.NotNil(t, d.Repayment)
	assert.Equal(t, 42, d.Repayment.Chapter)

	// second repayment is a no-op, not an error
	changed = d.Repay(50, ulid.Make(), "again")
	assert.False(t, changed)
	assert.Equal(t, 42, d.Repayment.Chapter)
}

func TestNewFaceDebt_Inheritance(t *testing.T) {
	favor := feud.NewFaceDebt(ulid.Make(), ulid.Make(), ulid.Make(), "a", "b", karma.DebtFavor, 35, ulid.Make())
	assert.False(t, favor.Inheritable)
}
