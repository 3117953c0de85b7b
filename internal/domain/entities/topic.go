package entities

import (
	"time"

	"github.com/google/uuid"
)

// TopicStatus represents the lifecycle status of a discussion topic
type TopicStatus string

const (
	TopicStatusPending   TopicStatus = "pending"
	TopicStatusActive    TopicStatus = "active"
	TopicStatusCompleted TopicStatus = "completed"
)

// TopicPriority represents the scheduling priority of a topic
type TopicPriority string

const (
	TopicPriorityLow    TopicPriority = "low"
	TopicPriorityMedium TopicPriority = "medium"
	TopicPriorityHigh   TopicPriority = "high"
)

// Topic represents a unit of discussion within a session.
// Only Status changes after creation; everything else is fixed at setup.
type Topic struct {
	ID              uuid.UUID     `json:"id"`
	SessionID       uuid.UUID     `json:"session_id"`
	Title           string        `json:"title"`
	DurationMinutes int           `json:"duration_minutes"`
	Priority        TopicPriority `json:"priority"`
	Status          TopicStatus   `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewTopic creates a new Topic in pending status
func NewTopic(sessionID uuid.UUID, title string, durationMinutes int, priority TopicPriority) *Topic {
	if priority == "" {
		priority = TopicPriorityMedium
	}
	return &Topic{
		ID:              uuid.New(),
		SessionID:       sessionID,
		Title:           title,
		DurationMinutes: durationMinutes,
		Priority:        priority,
		Status:          TopicStatusPending,
		CreatedAt:       time.Now(),
	}
}

// IsCompleted checks if the topic has finished discussion
func (t *Topic) IsCompleted() bool {
	return t.Status == TopicStatusCompleted
}

// PriorityRank returns a sortable rank for the priority (higher first)
func (t *Topic) PriorityRank() int {
	switch t.Priority {
	case TopicPriorityHigh:
		return 3
	case TopicPriorityMedium:
		return 2
	case TopicPriorityLow:
		return 1
	default:
		return 0
	}
}
