package life

import "errors"

var (
	// ErrInvalidDimension is returned when a grid is created or resized to a non-positive size.
	ErrInvalidDimension = errors.New("life: grid size must be at least 1")
	// ErrInvalidRuleSet is returned by RuleSet.Validate for inconsistent bounds or birth counts.
	ErrInvalidRuleSet = errors.New("life: invalid rule set")
)
