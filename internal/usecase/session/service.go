package session

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/repositories"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/conversation"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/progress"
)

// TranscriptExporter uploads a finished session's transcript and returns its
// storage URL
type TranscriptExporter interface {
	UploadTranscript(ctx context.Context, sessionID string, data []byte) (string, error)
}

// sessionState bundles everything live for one hosted session. Topics and
// message logs live in the session's own progress engine until the session
// ends and is archived.
type sessionState struct {
	session *entities.Session
	topics  []*entities.Topic
	engine  *progress.Engine
	driver  *conversation.Driver

	activeTopicID *uuid.UUID
}

// Service hosts discussion sessions: it owns the setup flow, drives the
// simulated conversation, tracks topic progress and archives ended sessions.
type Service struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionState

	registry   map[entities.ParticipantRole]conversation.StrategyFactory
	repo       repositories.SessionRepository
	exporter   TranscriptExporter
	seed       int64
	agentCount int
	logger     *zap.Logger
}

// defaultRoster seeds sessions created without an explicit participant list.
// Rosters larger than the list cycle it with numbered names.
var defaultRoster = []ParticipantDraft{
	{Name: "Jordan", Role: entities.ParticipantRoleFacilitator},
	{Name: "Avery", Role: entities.ParticipantRoleAnalyst},
	{Name: "Quinn", Role: entities.ParticipantRoleSkeptic},
	{Name: "Rowan", Role: entities.ParticipantRoleOptimist},
}

// NewService creates the session service. A zero seed derives one from the
// clock; any other value makes conversation sequences reproducible.
// agentCount sizes the default roster used when a session is created without
// participants; non-positive values fall back to one of each built-in role.
func NewService(repo repositories.SessionRepository, exporter TranscriptExporter, seed int64, agentCount int, logger *zap.Logger) *Service {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if agentCount <= 0 {
		agentCount = len(defaultRoster)
	}
	return &Service{
		sessions:   make(map[uuid.UUID]*sessionState),
		registry:   conversation.DefaultRegistry(),
		repo:       repo,
		exporter:   exporter,
		seed:       seed,
		agentCount: agentCount,
		logger:     logger,
	}
}

// CreateSession materializes a completed wizard: it registers every topic
// with a fresh progress engine, builds the conversation driver and hooks up
// the completion callbacks that advance the agenda.
func (s *Service) CreateSession(w *Wizard) (*entities.Session, error) {
	if len(w.participants) == 0 {
		for i := 0; i < s.agentCount; i++ {
			d := defaultRoster[i%len(defaultRoster)]
			if i >= len(defaultRoster) {
				d.Name = fmt.Sprintf("%s %d", d.Name, i/len(defaultRoster)+1)
			}
			w.AddParticipant(d)
		}
	}

	session, topics, err := w.Build()
	if err != nil {
		return nil, err
	}

	engine := progress.NewEngine(s.logger)
	for _, topic := range topics {
		if err := engine.InitializeTopic(topic); err != nil {
			return nil, err
		}
	}

	participants := make([]entities.Participant, 0, len(session.Participants))
	for _, p := range session.Participants {
		participants = append(participants, *p)
	}
	driver, err := conversation.NewDriver(participants, s.registry, rand.New(rand.NewSource(s.seed)), s.logger)
	if err != nil {
		return nil, err
	}

	// agenda order: priority first, then setup order
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].PriorityRank() > topics[j].PriorityRank()
	})

	st := &sessionState{
		session: session,
		topics:  topics,
		engine:  engine,
		driver:  driver,
	}
	for _, topic := range topics {
		if err := engine.OnTopicComplete(topic.ID, s.advanceAgenda(st)); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.sessions[session.ID] = st
	s.mu.Unlock()

	s.logger.Info("session created",
		zap.String("session_id", session.ID.String()),
		zap.Int("topics", len(topics)),
		zap.Int("participants", len(participants)))
	return session, nil
}

// advanceAgenda builds the completion callback that marks the finished topic
// and activates the next pending one by priority. The engine fires it after
// releasing its own lock, so re-entering the engine here is safe.
func (s *Service) advanceAgenda(st *sessionState) progress.CompletionCallback {
	return func(topicID uuid.UUID, final entities.TopicState) {
		s.mu.Lock()
		for _, t := range st.topics {
			if t.ID == topicID {
				t.Status = entities.TopicStatusCompleted
			}
		}
		next := nextPendingLocked(st)
		if next != nil {
			next.Status = entities.TopicStatusActive
			st.activeTopicID = &next.ID
		} else {
			st.activeTopicID = nil
		}
		s.mu.Unlock()

		if next == nil {
			s.logger.Info("agenda exhausted", zap.String("session_id", st.session.ID.String()))
			return
		}
		if err := st.engine.StartTopic(next.ID); err != nil {
			s.logger.Error("failed to start next topic",
				zap.String("topic_id", next.ID.String()), zap.Error(err))
			return
		}
		s.logger.Info("advanced to next topic",
			zap.String("session_id", st.session.ID.String()),
			zap.String("topic_id", next.ID.String()),
			zap.String("title", next.Title))
	}
}

// nextPendingLocked returns the highest-priority pending topic, or nil.
// Topics are kept in agenda order, so the first pending one wins.
func nextPendingLocked(st *sessionState) *entities.Topic {
	for _, t := range st.topics {
		if t.Status == entities.TopicStatusPending {
			return t
		}
	}
	return nil
}

// StartSession activates a draft session and opens its first topic
func (s *Service) StartSession(sessionID uuid.UUID) error {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return errors.ErrSessionNotFound(sessionID.String())
	}
	if st.session.Status == entities.SessionStatusEnded {
		s.mu.Unlock()
		return errors.ErrSessionEnded(sessionID.String())
	}
	if st.session.IsActive() {
		s.mu.Unlock()
		return nil
	}

	st.session.Start()
	first := nextPendingLocked(st)
	if first != nil {
		first.Status = entities.TopicStatusActive
		st.activeTopicID = &first.ID
	}
	s.mu.Unlock()

	if first != nil {
		if err := st.engine.StartTopic(first.ID); err != nil {
			return err
		}
	}
	s.logger.Info("session started", zap.String("session_id", sessionID.String()))
	return nil
}

// AddUserMessage records an utterance from the human participant on the
// session's active topic and returns the stored message
func (s *Service) AddUserMessage(sessionID uuid.UUID, text string) (*entities.Message, error) {
	st, topicID, err := s.activeTopic(sessionID)
	if err != nil {
		return nil, err
	}

	msg := entities.NewMessage(topicID, entities.HumanSenderID, text)
	if err := st.engine.AddMessage(topicID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// AdvanceConversation takes one simulated turn on the active topic and
// returns the generated message
func (s *Service) AdvanceConversation(sessionID uuid.UUID) (*entities.Message, error) {
	st, topicID, err := s.activeTopic(sessionID)
	if err != nil {
		return nil, err
	}

	var topic entities.Topic
	s.mu.Lock()
	for _, t := range st.topics {
		if t.ID == topicID {
			topic = *t
		}
	}
	s.mu.Unlock()

	msg := st.driver.NextMessage(topic)
	if err := st.engine.AddMessage(topicID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// activeTopic resolves the session and its currently active topic id
func (s *Service) activeTopic(sessionID uuid.UUID) (*sessionState, uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, uuid.Nil, errors.ErrSessionNotFound(sessionID.String())
	}
	if !st.session.IsActive() {
		return nil, uuid.Nil, errors.ErrSessionNotActive(sessionID.String())
	}
	if st.activeTopicID == nil {
		return nil, uuid.Nil, errors.ErrInvalidArgument("No active topic; the agenda is exhausted")
	}
	return st, *st.activeTopicID, nil
}

// GetSession returns the session's current lifecycle view
func (s *Service) GetSession(sessionID uuid.UUID) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.ErrSessionNotFound(sessionID.String())
	}
	copied := *st.session
	return &copied, nil
}

// GetProgress reports per-status topic counts for the session
func (s *Service) GetProgress(sessionID uuid.UUID) (*entities.ProgressReport, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	report := st.engine.GetProgressReport()
	return &report, nil
}

// GetAllTopicStates returns snapshots of every topic in the session
func (s *Service) GetAllTopicStates(sessionID uuid.UUID) ([]entities.TopicState, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return st.engine.GetAllTopicStates(), nil
}

// GetTopicState returns the engine's snapshot of one topic
func (s *Service) GetTopicState(sessionID, topicID uuid.UUID) (*entities.TopicState, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return st.engine.GetTopicState(topicID)
}

// GetTopicMessages returns the topic's message log in insertion order
func (s *Service) GetTopicMessages(sessionID, topicID uuid.UUID) ([]entities.Message, error) {
	st, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return st.engine.GetTopicMessages(topicID)
}

// ResetTopic returns a topic to pending with cleared metrics and log. If the
// reset topic was the active one, the session is left without an active
// topic until it is started again.
func (s *Service) ResetTopic(sessionID, topicID uuid.UUID) error {
	st, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if err := st.engine.ResetTopic(topicID); err != nil {
		return err
	}

	s.mu.Lock()
	for _, t := range st.topics {
		if t.ID == topicID {
			t.Status = entities.TopicStatusPending
		}
	}
	if st.activeTopicID != nil && *st.activeTopicID == topicID {
		st.activeTopicID = nil
	}
	s.mu.Unlock()
	return nil
}

// ReopenTopic starts a pending topic and makes it the active one. Used after
// a reset when the facilitator wants to revisit a topic out of agenda order.
func (s *Service) ReopenTopic(sessionID, topicID uuid.UUID) error {
	st, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if err := st.engine.StartTopic(topicID); err != nil {
		return err
	}

	s.mu.Lock()
	for _, t := range st.topics {
		if t.ID == topicID {
			t.Status = entities.TopicStatusActive
		}
	}
	st.activeTopicID = &topicID
	s.mu.Unlock()
	return nil
}

// transcript is the exported JSON shape for an ended session
type transcript struct {
	Session *entities.Session `json:"session"`
	Topics  []topicTranscript `json:"topics"`
}

type topicTranscript struct {
	Topic    entities.Topic      `json:"topic"`
	State    entities.TopicState `json:"state"`
	Messages []entities.Message  `json:"messages"`
}

// EndSession ends the session, exports its transcript to object storage and
// archives the session record. The transcript export is best-effort; a
// failed archive write is returned to the caller.
func (s *Service) EndSession(ctx context.Context, sessionID uuid.UUID) (*entities.Session, error) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, errors.ErrSessionNotFound(sessionID.String())
	}
	if st.session.Status == entities.SessionStatusEnded {
		s.mu.Unlock()
		return nil, errors.ErrSessionEnded(sessionID.String())
	}
	st.session.End()
	topics := make([]*entities.Topic, len(st.topics))
	copy(topics, st.topics)
	session := *st.session
	s.mu.Unlock()

	var transcriptURL *string
	if s.exporter != nil {
		data, err := s.buildTranscript(&session, topics, st.engine)
		if err == nil {
			url, uploadErr := s.exporter.UploadTranscript(ctx, sessionID.String(), data)
			if uploadErr != nil {
				s.logger.Warn("transcript export failed",
					zap.String("session_id", sessionID.String()), zap.Error(uploadErr))
			} else {
				transcriptURL = &url
			}
		} else {
			s.logger.Warn("transcript serialization failed", zap.Error(err))
		}
	}

	if s.repo != nil {
		record, err := s.buildRecord(&session, st.engine, transcriptURL)
		if err != nil {
			return nil, err
		}
		if err := s.repo.CreateSessionRecord(ctx, record); err != nil {
			return nil, err
		}
	}

	s.logger.Info("session ended", zap.String("session_id", sessionID.String()))
	return &session, nil
}

func (s *Service) buildTranscript(session *entities.Session, topics []*entities.Topic, engine *progress.Engine) ([]byte, error) {
	out := transcript{Session: session}
	for _, t := range topics {
		state, err := engine.GetTopicState(t.ID)
		if err != nil {
			return nil, err
		}
		messages, err := engine.GetTopicMessages(t.ID)
		if err != nil {
			return nil, err
		}
		out.Topics = append(out.Topics, topicTranscript{
			Topic:    *t,
			State:    *state,
			Messages: messages,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func (s *Service) buildRecord(session *entities.Session, engine *progress.Engine, transcriptURL *string) (*entities.SessionRecord, error) {
	participantsJSON, err := json.Marshal(session.Participants)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	statesJSON, err := json.Marshal(engine.GetAllTopicStates())
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	report := engine.GetProgressReport()

	return &entities.SessionRecord{
		ID:              session.ID,
		Title:           session.Title,
		Status:          session.Status,
		Participants:    datatypes.JSON(participantsJSON),
		TopicStates:     datatypes.JSON(statesJSON),
		OverallProgress: report.OverallProgress,
		TranscriptURL:   transcriptURL,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
	}, nil
}

// lookup fetches a hosted session regardless of lifecycle status
func (s *Service) lookup(sessionID uuid.UUID) (*sessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.ErrSessionNotFound(sessionID.String())
	}
	return st, nil
}
