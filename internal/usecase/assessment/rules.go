package assessment

import (
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// Rule is one ordered adjustment within a category. Apply reports the delta
// to add to the category score, the rationale behind it (empty for neutral
// tiers) and whether the rule fired at all.
type Rule interface {
	Apply(ctx *entities.AssessmentContext) (delta float64, reason string, fired bool)
}

// CompareOp selects how a numeric rule compares the field value against its
// tier thresholds
type CompareOp int

const (
	// OpGreater matches when value > threshold (tiers ordered high to low)
	OpGreater CompareOp = iota
	// OpAtMost matches when value <= threshold (tiers ordered low to high)
	OpAtMost
	// OpAtLeast matches when value >= threshold (tiers ordered high to low)
	OpAtLeast
)

// NumericTier is one breakpoint in a tiered numeric adjustment
type NumericTier struct {
	Threshold float64
	Delta     float64
	Reason    string
}

// NumericRule compares a numeric context field against an ordered list of
// breakpoints and applies the delta of the first tier matched. The optional
// Else tier applies when no breakpoint matches.
type NumericRule struct {
	Field   string
	Default float64
	Op      CompareOp
	Tiers   []NumericTier
	Else    *NumericTier
}

// Apply evaluates the rule against the context
func (r NumericRule) Apply(ctx *entities.AssessmentContext) (float64, string, bool) {
	value := ctx.Number(r.Field, r.Default)
	for _, tier := range r.Tiers {
		if r.matches(value, tier.Threshold) {
			return tier.Delta, tier.Reason, true
		}
	}
	if r.Else != nil {
		return r.Else.Delta, r.Else.Reason, true
	}
	return 0, "", false
}

func (r NumericRule) matches(value, threshold float64) bool {
	switch r.Op {
	case OpAtMost:
		return value <= threshold
	case OpAtLeast:
		return value >= threshold
	default:
		return value > threshold
	}
}

// LabelDelta is the adjustment for one enumerated value of a categorical
// field
type LabelDelta struct {
	Delta  float64
	Reason string
}

// CategoricalRule looks up a delta from a fixed table keyed by the field's
// enumerated value. Values outside the table leave the score untouched.
type CategoricalRule struct {
	Field   string
	Default string
	Deltas  map[string]LabelDelta
}

// Apply evaluates the rule against the context
func (r CategoricalRule) Apply(ctx *entities.AssessmentContext) (float64, string, bool) {
	value := ctx.Label(r.Field, r.Default)
	if d, ok := r.Deltas[value]; ok {
		return d.Delta, d.Reason, true
	}
	return 0, "", false
}
