package assessment

// EvaluateRequest asks for a proposal evaluation against one domain.
// Numbers and Labels populate the assessment context; missing fields fall
// back to the domain's documented defaults.
type EvaluateRequest struct {
	SessionID string             `json:"session_id" validate:"omitempty,uuid4"`
	Domain    string             `json:"domain" validate:"required,oneof=financial data_strategy"`
	Proposal  string             `json:"proposal" validate:"required"`
	Numbers   map[string]float64 `json:"numbers"`
	Labels    map[string]string  `json:"labels"`
}
