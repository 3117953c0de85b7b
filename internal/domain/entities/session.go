package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionStatus represents the lifecycle status of a discussion session
type SessionStatus string

const (
	SessionStatusDraft  SessionStatus = "draft"
	SessionStatusActive SessionStatus = "active"
	SessionStatusEnded  SessionStatus = "ended"
)

// Session represents one simulated discussion session. Topics and the
// message logs live in the progress engine for the session's lifetime; the
// session itself only carries identity, participants and lifecycle.
type Session struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Status       SessionStatus  `json:"status"`
	Participants []*Participant `json:"participants"`
	CreatedAt    time.Time      `json:"created_at"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	EndedAt      *time.Time     `json:"ended_at,omitempty"`
}

// NewSession creates a draft session
func NewSession(title string, participants []*Participant) *Session {
	return &Session{
		ID:           uuid.New(),
		Title:        title,
		Status:       SessionStatusDraft,
		Participants: participants,
		CreatedAt:    time.Now(),
	}
}

// Start marks the session as active
func (s *Session) Start() {
	now := time.Now()
	s.Status = SessionStatusActive
	s.StartedAt = &now
}

// End marks the session as ended
func (s *Session) End() {
	now := time.Now()
	s.Status = SessionStatusEnded
	s.EndedAt = &now
}

// IsActive checks if the session is running
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive
}

// Simulated returns the non-human participants
func (s *Session) Simulated() []*Participant {
	out := make([]*Participant, 0, len(s.Participants))
	for _, p := range s.Participants {
		if !p.IsHuman() {
			out = append(out, p)
		}
	}
	return out
}

// SessionRecord is the persisted archive row written when a session ends
type SessionRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Status          SessionStatus  `gorm:"type:varchar(20);not null" json:"status"`
	Participants    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"participants,omitempty"`
	TopicStates     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"topic_states,omitempty"`
	OverallProgress int            `json:"overall_progress"`
	TranscriptURL   *string        `gorm:"type:text" json:"transcript_url,omitempty"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	EndedAt         *time.Time     `json:"ended_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for SessionRecord
func (SessionRecord) TableName() string {
	return "session_records"
}
