// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
)

// GenerateConfigSchema generates the JSON Schema for NovelConfig, used to
// validate per-novel configuration documents managed outside this process.
func GenerateConfigSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&NovelConfig{})
	schema.Title = "Karmaloom Novel Configuration"
	schema.Description = "Per-novel tuning for the karma/face graph engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("SCHEMA_MARSHAL_FAILED").Wrap(err)
	}
	return data, nil
}
