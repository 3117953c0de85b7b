package presenter

import (
	assessmentdto "github.com/johnquangdev/boardroom-simulator/internal/adapter/dto/assessment"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/assessment"
)

// ToEvaluationResponse flattens an evaluation into its API shape
func ToEvaluationResponse(eval *assessment.Evaluation) *assessmentdto.EvaluationResponse {
	scores := make(map[string]assessmentdto.CategoryScoreResponse, len(eval.CategoryScores))
	for name, result := range eval.CategoryScores {
		scores[name] = assessmentdto.CategoryScoreResponse{
			Score:     result.Score,
			Rationale: result.Rationale,
		}
	}

	return &assessmentdto.EvaluationResponse{
		Domain:          string(eval.Domain),
		CategoryScores:  scores,
		Verdict:         string(eval.Result.Verdict),
		Confidence:      eval.Result.Confidence,
		Reasoning:       eval.Result.Reasoning,
		Concerns:        eval.Result.Concerns,
		Recommendations: eval.Result.Recommendations,
		Fallback:        eval.Fallback,
		Sequence:        eval.Sequence,
	}
}

// ToRecordResponse maps an archived assessment row to its API shape
func ToRecordResponse(record *entities.AssessmentRecord) *assessmentdto.RecordResponse {
	var sessionID *string
	if record.SessionID != nil {
		s := record.SessionID.String()
		sessionID = &s
	}

	return &assessmentdto.RecordResponse{
		ID:         record.ID.String(),
		SessionID:  sessionID,
		Domain:     string(record.Domain),
		Proposal:   record.Proposal,
		Verdict:    string(record.Verdict),
		Confidence: record.Confidence,
		Fallback:   record.Fallback,
		CreatedAt:  record.CreatedAt,
	}
}

// ToRecordResponses maps a batch of archived assessments
func ToRecordResponses(records []*entities.AssessmentRecord) []assessmentdto.RecordResponse {
	out := make([]assessmentdto.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *ToRecordResponse(r))
	}
	return out
}
