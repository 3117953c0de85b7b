package assessment

import (
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// Financial context fields and their defaults when absent:
//
//	expected_roi_percent    numeric, default 0
//	payback_months          numeric, default 36
//	budget_usd              numeric, default 0
//	risk_level              categorical low|medium|high, default "medium"
//	market_volatility_index numeric 0-100, default 50
//	market_growth_percent   numeric, default 5
//	competitor_count        numeric, default 5
//	team_experience_years   numeric, default 3
//	rollout_months          numeric, default 12

// FinancialDomain scores a proposal's financial viability
func FinancialDomain() Domain {
	return Domain{
		Name: entities.AssessmentDomainFinancial,
		Categories: []Category{
			{
				Name: "roi_analysis",
				Base: ConstantBase(50),
				Rules: []Rule{
					NumericRule{
						Field: "expected_roi_percent",
						Op:    OpGreater,
						Tiers: []NumericTier{
							{Threshold: 25, Delta: 30, Reason: "expected ROI above 25% is a strong return"},
							{Threshold: 15, Delta: 15, Reason: "expected ROI above 15% is a solid return"},
							{Threshold: 0, Delta: -10, Reason: "expected ROI below 15% leaves little margin"},
						},
						Else: &NumericTier{Delta: -30, Reason: "no positive return is expected"},
					},
					NumericRule{
						Field:   "payback_months",
						Default: 36,
						Op:      OpAtMost,
						Tiers: []NumericTier{
							{Threshold: 12, Delta: 20, Reason: "payback within a year"},
							{Threshold: 24, Delta: 10, Reason: "payback within two years"},
							{Threshold: 36, Delta: -5, Reason: "payback stretches to three years"},
						},
						Else: &NumericTier{Delta: -20, Reason: "payback beyond three years"},
					},
					NumericRule{
						Field: "budget_usd",
						Op:    OpGreater,
						Tiers: []NumericTier{
							{Threshold: 1_000_000, Delta: -10, Reason: "budget above $1M raises capital exposure"},
						},
					},
				},
			},
			{
				Name: "risk_profile",
				Base: ConstantBase(60),
				Rules: []Rule{
					CategoricalRule{
						Field:   "risk_level",
						Default: "medium",
						Deltas: map[string]LabelDelta{
							"low":    {Delta: 10, Reason: "low declared risk"},
							"medium": {Delta: 0},
							"high":   {Delta: -25, Reason: "high declared risk"},
						},
					},
					NumericRule{
						Field:   "market_volatility_index",
						Default: 50,
						Op:      OpGreater,
						Tiers: []NumericTier{
							{Threshold: 75, Delta: -15, Reason: "market volatility is severe"},
							{Threshold: 50, Delta: -5, Reason: "market volatility is elevated"},
						},
					},
				},
			},
			{
				Name: "market_opportunity",
				Base: ConstantBase(50),
				Rules: []Rule{
					NumericRule{
						Field:   "market_growth_percent",
						Default: 5,
						Op:      OpGreater,
						Tiers: []NumericTier{
							{Threshold: 20, Delta: 25, Reason: "market growing above 20% annually"},
							{Threshold: 10, Delta: 10, Reason: "market growing above 10% annually"},
							{Threshold: 0, Delta: -5, Reason: "market growth is sluggish"},
						},
						Else: &NumericTier{Delta: -15, Reason: "market is contracting"},
					},
					NumericRule{
						Field:   "competitor_count",
						Default: 5,
						Op:      OpAtMost,
						Tiers: []NumericTier{
							{Threshold: 2, Delta: 15, Reason: "few established competitors"},
							{Threshold: 10, Delta: 0},
						},
						Else: &NumericTier{Delta: -10, Reason: "market is crowded"},
					},
				},
			},
			{
				Name: "execution_readiness",
				Base: ConstantBase(55),
				Rules: []Rule{
					NumericRule{
						Field:   "team_experience_years",
						Default: 3,
						Op:      OpGreater,
						Tiers: []NumericTier{
							{Threshold: 10, Delta: 20, Reason: "deeply experienced team"},
							{Threshold: 5, Delta: 10, Reason: "seasoned team"},
							{Threshold: 2, Delta: 0},
						},
						Else: &NumericTier{Delta: -15, Reason: "team lacks track record"},
					},
					NumericRule{
						Field:   "rollout_months",
						Default: 12,
						Op:      OpAtMost,
						Tiers: []NumericTier{
							{Threshold: 6, Delta: 15, Reason: "fast rollout"},
							{Threshold: 12, Delta: 5, Reason: "rollout within a year"},
							{Threshold: 24, Delta: -5, Reason: "rollout drags past a year"},
						},
						Else: &NumericTier{Delta: -20, Reason: "multi-year rollout"},
					},
				},
			},
		},
	}
}
