package entities

import (
	"time"

	"github.com/google/uuid"
)

// HumanSenderID is the reserved sender identifier for the human participant.
// Every other sender identifier denotes a simulated participant.
const HumanSenderID = "user"

// Message represents a single utterance in a topic's discussion log.
// Messages are append-only: once recorded they are never mutated or removed
// except by an explicit reset of their topic.
type Message struct {
	ID        uuid.UUID `json:"id"`
	TopicID   uuid.UUID `json:"topic_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a new message timestamped now
func NewMessage(topicID uuid.UUID, senderID, text string) *Message {
	return &Message{
		ID:        uuid.New(),
		TopicID:   topicID,
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// IsFromHuman checks whether the message was sent by the human participant
func (m *Message) IsFromHuman() bool {
	return m.SenderID == HumanSenderID
}
