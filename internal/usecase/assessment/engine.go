package assessment

import (
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// Category is one independent sub-analysis within a domain: a base score
// plus ordered tiered adjustments. Every adjustment that fires with a
// non-empty reason contributes one rationale string; the final score is
// clamped to [0,100].
type Category struct {
	Name  string
	Base  func(ctx *entities.AssessmentContext) float64
	Rules []Rule
}

// ConstantBase returns a base-score function that ignores the context
func ConstantBase(v float64) func(*entities.AssessmentContext) float64 {
	return func(*entities.AssessmentContext) float64 { return v }
}

// Evaluate runs the sub-analysis against the context
func (c Category) Evaluate(ctx *entities.AssessmentContext) entities.CategoryScoreResult {
	score := c.Base(ctx)
	rationale := make([]string, 0, len(c.Rules))
	for _, rule := range c.Rules {
		delta, reason, fired := rule.Apply(ctx)
		if !fired {
			continue
		}
		score += delta
		if reason != "" {
			rationale = append(rationale, reason)
		}
	}
	return entities.CategoryScoreResult{
		Score:     clampScore(score),
		Rationale: rationale,
	}
}

// Domain bundles the fixed set of sub-analyses a proposal is scored against
type Domain struct {
	Name       entities.AssessmentDomain
	Categories []Category
}

// Engine is the generalized weighted-criteria scorer. It never produces the
// final verdict itself; it returns the per-category score bundle that the
// narrative generator turns into one.
type Engine struct {
	domains map[entities.AssessmentDomain]Domain
	logger  *zap.Logger
}

// NewEngine creates a scoring engine with the built-in domains registered
func NewEngine(logger *zap.Logger) *Engine {
	e := &Engine{
		domains: make(map[entities.AssessmentDomain]Domain),
		logger:  logger,
	}
	e.Register(FinancialDomain())
	e.Register(DataStrategyDomain())
	return e
}

// Register adds or replaces a domain
func (e *Engine) Register(d Domain) {
	e.domains[d.Name] = d
}

// Score runs every sub-analysis of the domain against the context and
// returns the category-score bundle keyed by category name
func (e *Engine) Score(domain entities.AssessmentDomain, ctx *entities.AssessmentContext) (map[string]entities.CategoryScoreResult, error) {
	d, ok := e.domains[domain]
	if !ok {
		return nil, errors.ErrUnknownAssessmentDomain(string(domain))
	}

	scores := make(map[string]entities.CategoryScoreResult, len(d.Categories))
	for _, cat := range d.Categories {
		result := cat.Evaluate(ctx)
		scores[cat.Name] = result
		if e.logger != nil {
			e.logger.Debug("category scored",
				zap.String("domain", string(domain)),
				zap.String("category", cat.Name),
				zap.Float64("score", result.Score),
			)
		}
	}
	return scores, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
