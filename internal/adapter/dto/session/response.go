package session

import "time"

// ParticipantResponse is the API view of one participant
type ParticipantResponse struct {
	ID       string `json:"id"`
	SenderID string `json:"sender_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsHuman  bool   `json:"is_human"`
}

// SessionResponse is the API view of a session's lifecycle
type SessionResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Status       string                `json:"status"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
	StartedAt    *time.Time            `json:"started_at,omitempty"`
	EndedAt      *time.Time            `json:"ended_at,omitempty"`
}

// MetricsResponse is the API view of a topic's conversation metrics
type MetricsResponse struct {
	TotalMessages    int     `json:"total_messages"`
	AgentMessages    int     `json:"agent_messages"`
	UserMessages     int     `json:"user_messages"`
	AvgMessageLength float64 `json:"avg_message_length"`
	RelevanceScore   int     `json:"relevance_score"`
}

// TopicStateResponse is the API view of one topic's progress
type TopicStateResponse struct {
	TopicID             string          `json:"topic_id"`
	Title               string          `json:"title"`
	Status              string          `json:"status"`
	MessageCount        int             `json:"message_count"`
	ParticipantCount    int             `json:"participant_count"`
	CompletionPercent   int             `json:"completion_percent"`
	PlannedDurationMins int             `json:"planned_duration_minutes"`
	ActualDurationMins  float64         `json:"actual_duration_minutes"`
	StartedAt           *time.Time      `json:"started_at,omitempty"`
	EndedAt             *time.Time      `json:"ended_at,omitempty"`
	Metrics             MetricsResponse `json:"metrics"`
}

// MessageResponse is the API view of one utterance
type MessageResponse struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	IsHuman   bool      `json:"is_human"`
	Timestamp time.Time `json:"timestamp"`
}

// ProgressResponse is the API view of the session-wide progress report
type ProgressResponse struct {
	TotalTopics     int `json:"total_topics"`
	PendingTopics   int `json:"pending_topics"`
	ActiveTopics    int `json:"active_topics"`
	CompletedTopics int `json:"completed_topics"`
	OverallProgress int `json:"overall_progress"`
}
