package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// AssessmentRepository defines persistence operations for archived proposal
// assessments
type AssessmentRepository interface {
	CreateAssessment(ctx context.Context, record *entities.AssessmentRecord) error
	GetAssessmentByID(ctx context.Context, id uuid.UUID) (*entities.AssessmentRecord, error)
	ListAssessmentsBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.AssessmentRecord, error)
	ListAssessmentsByDomain(ctx context.Context, domain entities.AssessmentDomain, limit int) ([]*entities.AssessmentRecord, error)
}
