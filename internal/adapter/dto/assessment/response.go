package assessment

import "time"

// CategoryScoreResponse is the API view of one sub-analysis score
type CategoryScoreResponse struct {
	Score     float64  `json:"score"`
	Rationale []string `json:"rationale"`
}

// EvaluationResponse is the API view of a full proposal evaluation
type EvaluationResponse struct {
	Domain          string                           `json:"domain"`
	CategoryScores  map[string]CategoryScoreResponse `json:"category_scores"`
	Verdict         string                           `json:"verdict"`
	Confidence      float64                          `json:"confidence"`
	Reasoning       string                           `json:"reasoning"`
	Concerns        []string                         `json:"concerns"`
	Recommendations []string                         `json:"recommendations"`
	Fallback        bool                             `json:"fallback"`
	Sequence        uint64                           `json:"sequence"`
}

// RecordResponse is the API view of an archived assessment
type RecordResponse struct {
	ID         string    `json:"id"`
	SessionID  *string   `json:"session_id,omitempty"`
	Domain     string    `json:"domain"`
	Proposal   string    `json:"proposal"`
	Verdict    string    `json:"verdict"`
	Confidence float64   `json:"confidence"`
	Fallback   bool      `json:"fallback"`
	CreatedAt  time.Time `json:"created_at"`
}
