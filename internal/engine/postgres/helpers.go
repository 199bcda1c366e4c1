// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// marshalJSON encodes a nested value object for a JSONB column.
func marshalJSON(v any, field string) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, oops.With("operation", "encode "+field).Wrap(err)
	}
	return raw, nil
}

// unmarshalJSON decodes a JSONB column into dst. A NULL column is a no-op.
func unmarshalJSON(raw []byte, dst any, field string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return oops.With("operation", "decode "+field).Wrap(err)
	}
	return nil
}

// parseULID parses a stored ULID string, wrapping errors with the field name.
func parseULID(s, field string) (ulid.ULID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, oops.With("operation", "parse "+field).With(field, s).Wrap(err)
	}
	return id, nil
}
