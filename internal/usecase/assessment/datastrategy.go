package assessment

import (
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// Data-strategy context fields and their defaults when absent:
//
//	data_quality         numeric 1-10, default 5
//	data_volume_tb       numeric, default 1
//	data_sources         numeric, default 3
//	compliance_posture   categorical full|partial|none, default "partial"
//	pii_exposure_percent numeric 0-100, default 0
//	cloud_maturity       categorical native|hybrid|on_prem, default "hybrid"
//	legacy_system_count  numeric, default 2
//	decision_impact      categorical strategic|tactical|cosmetic, default "tactical"
//	time_to_value_months numeric, default 12

// DataStrategyDomain scores a proposal's data-strategy soundness
func DataStrategyDomain() Domain {
	return Domain{
		Name: entities.AssessmentDomainDataStrategy,
		Categories: []Category{
			{
				Name: "data_quality",
				// Declared quality (1-10) anchors the base score directly
				Base: func(ctx *entities.AssessmentContext) float64 {
					return ctx.Number("data_quality", 5) * 10
				},
				Rules: []Rule{
					NumericRule{
						Field:   "data_quality",
						Default: 5,
						Op:      OpAtLeast,
						Tiers: []NumericTier{
							{Threshold: 8, Delta: 0},
							{Threshold: 6, Delta: 0},
							{Threshold: 4, Delta: -10, Reason: "data quality needs cleanup before use"},
						},
						Else: &NumericTier{Delta: -25, Reason: "data quality is poor"},
					},
					NumericRule{
						Field:   "data_volume_tb",
						Default: 1,
						Op:      OpGreater,
						Tiers: []NumericTier{
							{Threshold: 100, Delta: -10, Reason: "data volume above 100TB strains processing"},
							{Threshold: 10, Delta: -5, Reason: "data volume above 10TB adds processing cost"},
						},
					},
					NumericRule{
						Field:   "data_sources",
						Default: 3,
						Op:      OpGreater,
						Tiers: []NumericTier{
							{Threshold: 10, Delta: -15, Reason: "integrating more than 10 sources is heavy lifting"},
							{Threshold: 5, Delta: -5, Reason: "integrating more than 5 sources adds friction"},
						},
					},
				},
			},
			{
				Name: "governance",
				Base: ConstantBase(65),
				Rules: []Rule{
					CategoricalRule{
						Field:   "compliance_posture",
						Default: "partial",
						Deltas: map[string]LabelDelta{
							"full":    {Delta: 15, Reason: "compliance posture is fully established"},
							"partial": {Delta: 0},
							"none":    {Delta: -30, Reason: "no compliance posture in place"},
						},
					},
					NumericRule{
						Field: "pii_exposure_percent",
						Op:    OpGreater,
						Tiers: []NumericTier{
							{Threshold: 50, Delta: -20, Reason: "majority of records carry PII"},
							{Threshold: 10, Delta: -10, Reason: "meaningful PII exposure"},
						},
					},
				},
			},
			{
				Name: "platform_readiness",
				Base: ConstantBase(50),
				Rules: []Rule{
					CategoricalRule{
						Field:   "cloud_maturity",
						Default: "hybrid",
						Deltas: map[string]LabelDelta{
							"native":  {Delta: 20, Reason: "cloud-native platform"},
							"hybrid":  {Delta: 5, Reason: "hybrid platform with cloud foothold"},
							"on_prem": {Delta: -10, Reason: "fully on-premises platform"},
						},
					},
					NumericRule{
						Field:   "legacy_system_count",
						Default: 2,
						Op:      OpGreater,
						Tiers: []NumericTier{
							{Threshold: 8, Delta: -20, Reason: "heavy legacy estate to untangle"},
							{Threshold: 3, Delta: -10, Reason: "several legacy systems in the path"},
						},
					},
				},
			},
			{
				Name: "analytics_value",
				Base: ConstantBase(50),
				Rules: []Rule{
					CategoricalRule{
						Field:   "decision_impact",
						Default: "tactical",
						Deltas: map[string]LabelDelta{
							"strategic": {Delta: 25, Reason: "informs strategic decisions"},
							"tactical":  {Delta: 5, Reason: "informs tactical decisions"},
							"cosmetic":  {Delta: -15, Reason: "reporting-only value"},
						},
					},
					NumericRule{
						Field:   "time_to_value_months",
						Default: 12,
						Op:      OpAtMost,
						Tiers: []NumericTier{
							{Threshold: 3, Delta: 20, Reason: "value within a quarter"},
							{Threshold: 6, Delta: 10, Reason: "value within half a year"},
							{Threshold: 12, Delta: 0},
						},
						Else: &NumericTier{Delta: -10, Reason: "value is over a year out"},
					},
				},
			},
		},
	}
}
