package life

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RuleSet holds the survival window and the birth counts of a life-like automaton.
type RuleSet struct {
	MinSurvive int
	MaxSurvive int
	Birth      []int
}

// WillSurvive reports whether a live cell with count neighbors stays alive.
func WillSurvive(count int, rs RuleSet) bool {
	return count >= rs.MinSurvive && count <= rs.MaxSurvive
}

// WillBirth reports whether a dead cell with count neighbors comes alive.
// An empty birth set never births.
func WillBirth(count int, rs RuleSet) bool {
	return slices.Contains(rs.Birth, count)
}

// Clone returns a copy that shares no memory with rs.
func (rs RuleSet) Clone() RuleSet {
	rs.Birth = slices.Clone(rs.Birth)
	return rs
}

// Validate checks 0 <= MinSurvive <= MaxSurvive <= maxNeighbors and that every
// birth count is non-negative. The engine never calls it; hosts that want strict
// configuration do.
func (rs RuleSet) Validate(maxNeighbors int) error {
	if rs.MinSurvive < 0 || rs.MinSurvive > rs.MaxSurvive || rs.MaxSurvive > maxNeighbors {
		return fmt.Errorf("%w: survive window [%d,%d] outside [0,%d]", ErrInvalidRuleSet, rs.MinSurvive, rs.MaxSurvive, maxNeighbors)
	}
	if len(rs.Birth) == 0 {
		return fmt.Errorf("%w: empty birth set", ErrInvalidRuleSet)
	}
	for _, b := range rs.Birth {
		if b < 0 {
			return fmt.Errorf("%w: negative birth count %d", ErrInvalidRuleSet, b)
		}
	}
	return nil
}

// String renders the rule as B<births>/S<min>..<max>, e.g. "B3/S2..3".
func (rs RuleSet) String() string {
	births := slices.Clone(rs.Birth)
	slices.Sort(births)
	parts := make([]string, len(births))
	for i, b := range births {
		parts[i] = strconv.Itoa(b)
	}
	return fmt.Sprintf("B%s/S%d..%d", strings.Join(parts, ","), rs.MinSurvive, rs.MaxSurvive)
}
