package repository

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	repo "github.com/johnquangdev/boardroom-simulator/internal/domain/repositories"
)

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new assessment repository backed by GORM
func NewAssessmentRepository(db *gorm.DB) repo.AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) CreateAssessment(ctx context.Context, record *entities.AssessmentRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.ErrDBQueryFailed(err)
	}
	return nil
}

func (r *assessmentRepository) GetAssessmentByID(ctx context.Context, id uuid.UUID) (*entities.AssessmentRecord, error) {
	var record entities.AssessmentRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound("assessment")
		}
		return nil, errors.ErrDBQueryFailed(err)
	}
	return &record, nil
}

func (r *assessmentRepository) ListAssessmentsBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.AssessmentRecord, error) {
	var records []*entities.AssessmentRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	return records, nil
}

func (r *assessmentRepository) ListAssessmentsByDomain(ctx context.Context, domain entities.AssessmentDomain, limit int) ([]*entities.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []*entities.AssessmentRecord
	err := r.db.WithContext(ctx).
		Where("domain = ?", domain).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	return records, nil
}
