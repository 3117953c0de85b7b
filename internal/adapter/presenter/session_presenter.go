package presenter

import (
	sessiondto "github.com/johnquangdev/boardroom-simulator/internal/adapter/dto/session"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// ToSessionResponse maps a session entity to its API shape
func ToSessionResponse(s *entities.Session) *sessiondto.SessionResponse {
	participants := make([]sessiondto.ParticipantResponse, 0, len(s.Participants))
	for _, p := range s.Participants {
		participants = append(participants, sessiondto.ParticipantResponse{
			ID:       p.ID.String(),
			SenderID: p.SenderID,
			Name:     p.Name,
			Role:     string(p.Role),
			IsHuman:  p.IsHuman(),
		})
	}

	return &sessiondto.SessionResponse{
		ID:           s.ID.String(),
		Title:        s.Title,
		Status:       string(s.Status),
		Participants: participants,
		CreatedAt:    s.CreatedAt,
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
	}
}

// ToTopicStateResponse maps a topic state snapshot to its API shape
func ToTopicStateResponse(st *entities.TopicState) *sessiondto.TopicStateResponse {
	return &sessiondto.TopicStateResponse{
		TopicID:             st.TopicID.String(),
		Title:               st.Title,
		Status:              string(st.Status),
		MessageCount:        st.MessageCount,
		ParticipantCount:    st.ParticipantCount,
		CompletionPercent:   st.CompletionPercent,
		PlannedDurationMins: st.PlannedDurationMins,
		ActualDurationMins:  st.ActualDurationMins,
		StartedAt:           st.StartedAt,
		EndedAt:             st.EndedAt,
		Metrics: sessiondto.MetricsResponse{
			TotalMessages:    st.Metrics.TotalMessages,
			AgentMessages:    st.Metrics.AgentMessages,
			UserMessages:     st.Metrics.UserMessages,
			AvgMessageLength: st.Metrics.AvgMessageLength,
			RelevanceScore:   st.Metrics.RelevanceScore,
		},
	}
}

// ToTopicStateResponses maps a batch of topic states
func ToTopicStateResponses(states []entities.TopicState) []sessiondto.TopicStateResponse {
	out := make([]sessiondto.TopicStateResponse, 0, len(states))
	for i := range states {
		out = append(out, *ToTopicStateResponse(&states[i]))
	}
	return out
}

// ToMessageResponse maps one message to its API shape
func ToMessageResponse(m *entities.Message) *sessiondto.MessageResponse {
	return &sessiondto.MessageResponse{
		ID:        m.ID.String(),
		TopicID:   m.TopicID.String(),
		SenderID:  m.SenderID,
		Text:      m.Text,
		IsHuman:   m.IsFromHuman(),
		Timestamp: m.Timestamp,
	}
}

// ToMessageResponses maps a topic's message log
func ToMessageResponses(messages []entities.Message) []sessiondto.MessageResponse {
	out := make([]sessiondto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, *ToMessageResponse(&messages[i]))
	}
	return out
}

// ToProgressResponse maps the progress report to its API shape
func ToProgressResponse(r *entities.ProgressReport) *sessiondto.ProgressResponse {
	return &sessiondto.ProgressResponse{
		TotalTopics:     r.TotalTopics,
		PendingTopics:   r.PendingTopics,
		ActiveTopics:    r.ActiveTopics,
		CompletedTopics: r.CompletedTopics,
		OverallProgress: r.OverallProgress,
	}
}
