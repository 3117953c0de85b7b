package session

import (
	"strings"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// WizardStep identifies one step of the session setup flow
type WizardStep string

const (
	StepDetails      WizardStep = "details"
	StepTopics       WizardStep = "topics"
	StepParticipants WizardStep = "participants"
	StepReview       WizardStep = "review"
)

var stepOrder = []WizardStep{StepDetails, StepTopics, StepParticipants, StepReview}

// TopicDraft is the wizard's pre-validation shape of a topic
type TopicDraft struct {
	Title           string
	DurationMinutes int
	Priority        entities.TopicPriority
}

// ParticipantDraft is the wizard's pre-validation shape of a simulated
// participant
type ParticipantDraft struct {
	Name string
	Role entities.ParticipantRole
}

// Wizard accumulates session setup input across the details, topics,
// participants and review steps. It is pure form state: nothing touches the
// engine or the database until Build.
type Wizard struct {
	step         int
	title        string
	humanName    string
	topics       []TopicDraft
	participants []ParticipantDraft
}

// NewWizard starts a fresh setup flow on the details step
func NewWizard() *Wizard {
	return &Wizard{}
}

// Step returns the wizard's current step
func (w *Wizard) Step() WizardStep {
	return stepOrder[w.step]
}

// SetDetails records the session title and the human participant's name
func (w *Wizard) SetDetails(title, humanName string) {
	w.title = strings.TrimSpace(title)
	w.humanName = strings.TrimSpace(humanName)
}

// AddTopic queues one topic draft
func (w *Wizard) AddTopic(draft TopicDraft) {
	w.topics = append(w.topics, draft)
}

// AddParticipant queues one simulated participant draft
func (w *Wizard) AddParticipant(draft ParticipantDraft) {
	w.participants = append(w.participants, draft)
}

// Next validates the current step and advances. Validation failures keep the
// wizard on the current step.
func (w *Wizard) Next() error {
	if err := w.validateStep(stepOrder[w.step]); err != nil {
		return err
	}
	if w.step < len(stepOrder)-1 {
		w.step++
	}
	return nil
}

// Back returns to the previous step without validation
func (w *Wizard) Back() {
	if w.step > 0 {
		w.step--
	}
}

func (w *Wizard) validateStep(step WizardStep) error {
	switch step {
	case StepDetails:
		if w.title == "" {
			return errors.ErrInvalidArgument("Session title is required")
		}
		if w.humanName == "" {
			return errors.ErrInvalidArgument("Human participant name is required")
		}
	case StepTopics:
		if len(w.topics) == 0 {
			return errors.ErrInvalidArgument("At least one topic is required")
		}
		for _, t := range w.topics {
			if strings.TrimSpace(t.Title) == "" {
				return errors.ErrInvalidArgument("Topic title is required")
			}
			if t.DurationMinutes <= 0 {
				return errors.ErrInvalidTopicDuration(t.DurationMinutes)
			}
		}
	case StepParticipants:
		if len(w.participants) == 0 {
			return errors.ErrNoAgentParticipants()
		}
		for _, p := range w.participants {
			if strings.TrimSpace(p.Name) == "" {
				return errors.ErrInvalidArgument("Participant name is required")
			}
		}
	case StepReview:
		// review has nothing of its own to validate
	}
	return nil
}

// Build validates every step and materializes the session and its topics.
// The wizard can be built from any step; earlier validation still applies.
func (w *Wizard) Build() (*entities.Session, []*entities.Topic, error) {
	for _, step := range stepOrder {
		if err := w.validateStep(step); err != nil {
			return nil, nil, err
		}
	}

	participants := make([]*entities.Participant, 0, len(w.participants)+1)
	participants = append(participants, entities.NewHumanParticipant(w.humanName))
	for _, d := range w.participants {
		participants = append(participants, entities.NewParticipant(d.Name, d.Role))
	}

	session := entities.NewSession(w.title, participants)

	topics := make([]*entities.Topic, 0, len(w.topics))
	for _, d := range w.topics {
		topics = append(topics, entities.NewTopic(session.ID, d.Title, d.DurationMinutes, d.Priority))
	}
	return session, topics, nil
}
