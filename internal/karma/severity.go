// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package karma

import "errors"

// Severity grades how grave an action was in its narrative context.
type Severity string

// Severities.
const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeveritySevere   Severity = "severe"
	SeverityExtreme  Severity = "extreme"
)

// ErrInvalidSeverity indicates an unrecognized severity.
var ErrInvalidSeverity = errors.New("invalid severity")

// severityMultipliers scales the base weight per severity grade.
var severityMultipliers = map[Severity]float64{
	SeverityMinor:    0.5,
	SeverityModerate: 1.0,
	SeverityMajor:    1.5,
	SeveritySevere:   2.0,
	SeverityExtreme:  2.5,
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// Validate checks that the severity is one of the known grades.
func (s Severity) Validate() error {
	if _, ok := severityMultipliers[s]; !ok {
		return ErrInvalidSeverity
	}
	return nil
}

// Multiplier returns the weight multiplier for the severity.
func (s Severity) Multiplier() (float64, error) {
	m, ok := severityMultipliers[s]
	if !ok {
		return 0, ErrInvalidSeverity
	}
	return m, nil
}

// ValidSeverities returns all severities from least to most grave.
func ValidSeverities() []Severity {
	return []Severity{
		SeverityMinor, SeverityModerate, SeverityMajor,
		SeveritySevere, SeverityExtreme,
	}
}
