package assessment

import (
	"context"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// NarrativeGenerator turns the scored category bundle and the original
// proposal text into a final verdict. Implementations may call out to an
// external text model and may fail; the assessment service substitutes the
// fixed fallback result on any failure, exactly once, with no retry.
type NarrativeGenerator interface {
	Evaluate(ctx context.Context, proposal string, fields map[string]interface{}, scores map[string]entities.CategoryScoreResult) (*entities.AssessmentResult, error)
}
