package entities

import (
	"github.com/google/uuid"
)

// ParticipantRole selects the behavior strategy of a simulated participant.
// Roles are resolved through a registry at session setup.
type ParticipantRole string

const (
	ParticipantRoleFacilitator ParticipantRole = "facilitator"
	ParticipantRoleAnalyst     ParticipantRole = "analyst"
	ParticipantRoleSkeptic     ParticipantRole = "skeptic"
	ParticipantRoleOptimist    ParticipantRole = "optimist"
	ParticipantRoleHuman       ParticipantRole = "human"
)

// Participant represents one participant in a discussion session. Exactly
// one participant per session carries the reserved human sender identifier;
// the rest are simulated.
type Participant struct {
	ID       uuid.UUID       `json:"id"`
	SenderID string          `json:"sender_id"`
	Name     string          `json:"name"`
	Role     ParticipantRole `json:"role"`
}

// NewParticipant creates a simulated participant with a generated sender id
func NewParticipant(name string, role ParticipantRole) *Participant {
	id := uuid.New()
	return &Participant{
		ID:       id,
		SenderID: id.String(),
		Name:     name,
		Role:     role,
	}
}

// NewHumanParticipant creates the session's human participant carrying the
// reserved sender identifier
func NewHumanParticipant(name string) *Participant {
	return &Participant{
		ID:       uuid.New(),
		SenderID: HumanSenderID,
		Name:     name,
		Role:     ParticipantRoleHuman,
	}
}

// IsHuman checks whether this participant is the human one
func (p *Participant) IsHuman() bool {
	return p.SenderID == HumanSenderID
}
