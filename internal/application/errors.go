package app

import "errors"

var (
	// ErrInvalidGeometry marks a malformed bbox or non-positive image
	// dimensions; the detection is dropped from scoring, not fatal.
	ErrInvalidGeometry = errors.New("invalid detection geometry")

	// ErrNoHistory means the kind has no detection history at all.
	ErrNoHistory = errors.New("no history for equipment type")

	// ErrNoRecentHistory means the kind has history, but none inside
	// the requested window.
	ErrNoRecentHistory = errors.New("no recent history for equipment type")

	// ErrRuleNotFound marks a lookup of an unknown alert rule id.
	ErrRuleNotFound = errors.New("alert rule not found")
)
