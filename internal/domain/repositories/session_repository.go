package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// SessionRepository defines persistence operations for archived session
// records
type SessionRepository interface {
	CreateSessionRecord(ctx context.Context, record *entities.SessionRecord) error
	GetSessionRecordByID(ctx context.Context, id uuid.UUID) (*entities.SessionRecord, error)
	ListSessionRecords(ctx context.Context, limit int) ([]*entities.SessionRecord, error)
}
