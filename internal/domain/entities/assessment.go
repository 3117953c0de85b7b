package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssessmentDomain identifies which weighted-criteria domain a proposal is
// evaluated against
type AssessmentDomain string

const (
	AssessmentDomainFinancial    AssessmentDomain = "financial"
	AssessmentDomainDataStrategy AssessmentDomain = "data_strategy"
)

// Verdict represents the final recommendation for a proposal
type Verdict string

const (
	VerdictApprove Verdict = "approve"
	VerdictReject  Verdict = "reject"
	VerdictNeutral Verdict = "neutral"
)

// IsValid checks the verdict against the allowed set
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictApprove, VerdictReject, VerdictNeutral:
		return true
	}
	return false
}

// AssessmentContext is a flat record of named optional fields, numeric or
// categorical, specific to one domain. Every lookup supplies the documented
// default used when the field is absent.
type AssessmentContext struct {
	numbers map[string]float64
	labels  map[string]string
}

// NewAssessmentContext creates an empty context
func NewAssessmentContext() *AssessmentContext {
	return &AssessmentContext{
		numbers: make(map[string]float64),
		labels:  make(map[string]string),
	}
}

// SetNumber sets a numeric field
func (c *AssessmentContext) SetNumber(name string, value float64) *AssessmentContext {
	c.numbers[name] = value
	return c
}

// SetLabel sets a categorical field
func (c *AssessmentContext) SetLabel(name, value string) *AssessmentContext {
	c.labels[name] = value
	return c
}

// Number returns the numeric field or the given default when absent
func (c *AssessmentContext) Number(name string, def float64) float64 {
	if c == nil {
		return def
	}
	if v, ok := c.numbers[name]; ok {
		return v
	}
	return def
}

// Label returns the categorical field or the given default when absent
func (c *AssessmentContext) Label(name, def string) string {
	if c == nil {
		return def
	}
	if v, ok := c.labels[name]; ok {
		return v
	}
	return def
}

// Fields returns a flattened copy of all fields, for prompt building and
// archival
func (c *AssessmentContext) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(c.numbers)+len(c.labels))
	for k, v := range c.numbers {
		out[k] = v
	}
	for k, v := range c.labels {
		out[k] = v
	}
	return out
}

// CategoryScoreResult is the output of a single sub-analysis: a clamped
// score plus the ordered rationale behind it
type CategoryScoreResult struct {
	Score     float64  `json:"score"` // 0-100
	Rationale []string `json:"rationale"`
}

// AssessmentResult is the final verdict for one proposal evaluation.
// Immutable after creation.
type AssessmentResult struct {
	Verdict         Verdict  `json:"verdict"`
	Confidence      float64  `json:"confidence"` // 0-100
	Reasoning       string   `json:"reasoning"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}

// FallbackAssessmentResult is the fixed result substituted whenever the
// narrative generator fails. Substituted exactly once per failed call,
// never retried.
func FallbackAssessmentResult() *AssessmentResult {
	return &AssessmentResult{
		Verdict:         VerdictNeutral,
		Confidence:      50,
		Reasoning:       "analysis failed",
		Concerns:        []string{"unable to complete full analysis"},
		Recommendations: []string{"retry with updated context"},
	}
}

// AssessmentRecord is the persisted archive row for one proposal evaluation
type AssessmentRecord struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID      *uuid.UUID       `gorm:"type:uuid;index" json:"session_id,omitempty"`
	Domain         AssessmentDomain `gorm:"type:varchar(50);not null;index" json:"domain"`
	Proposal       string           `gorm:"type:text;not null" json:"proposal"`
	ContextFields  datatypes.JSON   `gorm:"type:jsonb;default:'{}'" json:"context_fields,omitempty"`
	CategoryScores datatypes.JSON   `gorm:"type:jsonb;default:'{}'" json:"category_scores,omitempty"`
	Verdict        Verdict          `gorm:"type:varchar(20);not null" json:"verdict"`
	Confidence     float64          `json:"confidence"`
	Reasoning      string           `gorm:"type:text" json:"reasoning"`
	Concerns       datatypes.JSON   `gorm:"type:jsonb;default:'[]'" json:"concerns,omitempty"`
	Fallback       bool             `gorm:"default:false" json:"fallback"`
	Sequence       uint64           `gorm:"not null;default:0" json:"sequence"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for AssessmentRecord
func (AssessmentRecord) TableName() string {
	return "assessment_records"
}
