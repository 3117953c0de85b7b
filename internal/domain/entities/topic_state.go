package entities

import (
	"time"

	"github.com/google/uuid"
)

// TopicMetrics holds the per-topic conversation metrics derived from the
// message log
type TopicMetrics struct {
	TotalMessages    int     `json:"total_messages"`
	AgentMessages    int     `json:"agent_messages"`
	UserMessages     int     `json:"user_messages"`
	AvgMessageLength float64 `json:"avg_message_length"` // characters
	RelevanceScore   int     `json:"relevance_score"`    // 0-100
}

// TopicState is the progress engine's view of a topic: lifecycle status,
// counters and derived metrics. It is owned exclusively by the engine;
// accessors hand out copies.
type TopicState struct {
	TopicID             uuid.UUID    `json:"topic_id"`
	Title               string       `json:"title"`
	Status              TopicStatus  `json:"status"`
	MessageCount        int          `json:"message_count"`
	ParticipantCount    int          `json:"participant_count"`
	StartedAt           *time.Time   `json:"started_at,omitempty"`
	EndedAt             *time.Time   `json:"ended_at,omitempty"`
	PlannedDurationMins int          `json:"planned_duration_minutes"`
	ActualDurationMins  float64      `json:"actual_duration_minutes"` // 1-decimal precision
	CompletionPercent   int          `json:"completion_percent"`      // 0-100
	Metrics             TopicMetrics `json:"metrics"`
}

// NewTopicState creates a zeroed pending state for a topic
func NewTopicState(topic *Topic) *TopicState {
	return &TopicState{
		TopicID:             topic.ID,
		Title:               topic.Title,
		Status:              TopicStatusPending,
		PlannedDurationMins: topic.DurationMinutes,
	}
}

// Clone returns an independent copy of the state so callers cannot mutate
// engine internals through it
func (s *TopicState) Clone() *TopicState {
	cp := *s
	if s.StartedAt != nil {
		t := *s.StartedAt
		cp.StartedAt = &t
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		cp.EndedAt = &t
	}
	return &cp
}

// ProgressReport summarizes topic statuses across a session
type ProgressReport struct {
	TotalTopics     int `json:"total_topics"`
	PendingTopics   int `json:"pending_topics"`
	ActiveTopics    int `json:"active_topics"`
	CompletedTopics int `json:"completed_topics"`
	OverallProgress int `json:"overall_progress"` // round(completed/total*100)
}
