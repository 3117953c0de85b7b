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

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository backed by GORM
func NewSessionRepository(db *gorm.DB) repo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSessionRecord(ctx context.Context, record *entities.SessionRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.ErrDBQueryFailed(err)
	}
	return nil
}

func (r *sessionRepository) GetSessionRecordByID(ctx context.Context, id uuid.UUID) (*entities.SessionRecord, error) {
	var record entities.SessionRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrSessionNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed(err)
	}
	return &record, nil
}

func (r *sessionRepository) ListSessionRecords(ctx context.Context, limit int) ([]*entities.SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []*entities.SessionRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, errors.ErrDBQueryFailed(err)
	}
	return records, nil
}
