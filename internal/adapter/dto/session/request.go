package session

// TopicInput is one agenda topic in a session creation request
type TopicInput struct {
	Title           string `json:"title" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Priority        string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// ParticipantInput is one simulated participant in a session creation request
type ParticipantInput struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=facilitator analyst skeptic optimist"`
}

// CreateSessionRequest is the full setup payload. The server runs it through
// the same wizard steps an interactive client would. An omitted participant
// list gets the configured default roster of simulated agents.
type CreateSessionRequest struct {
	Title        string             `json:"title" validate:"required"`
	HumanName    string             `json:"human_name" validate:"required"`
	Topics       []TopicInput       `json:"topics" validate:"required,min=1,dive"`
	Participants []ParticipantInput `json:"participants" validate:"omitempty,dive"`
}

// AddMessageRequest carries one human utterance
type AddMessageRequest struct {
	Text string `json:"text" validate:"required"`
}
