package progress

import (
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// CompletionCallback is invoked exactly once when a topic completes, with
// the topic id and a snapshot of its final state
type CompletionCallback func(topicID uuid.UUID, final entities.TopicState)

// Engine tracks per-topic conversation state, derives progress and relevance
// metrics from the message log, and decides when a topic is done.
//
// All operations run synchronously to completion; a mutex serializes them so
// no caller ever observes a half-applied update. Completion callbacks fire
// after the internal lock is released but before the triggering call
// returns, so a callback may safely re-enter the engine (e.g. to start the
// next topic).
type Engine struct {
	mu        sync.Mutex
	topics    map[uuid.UUID]*topicRecord
	callbacks map[uuid.UUID]CompletionCallback
	now       func() time.Time
	logger    *zap.Logger
}

// topicRecord is the engine-private state for one topic. The message log is
// append-only; senders and running totals avoid rescanning the log on every
// recompute.
type topicRecord struct {
	state      entities.TopicState
	messages   []entities.Message
	senders    map[string]struct{}
	totalWords int
	totalChars int
}

// NewEngine creates a progress engine with an empty topic registry
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		topics:    make(map[uuid.UUID]*topicRecord),
		callbacks: make(map[uuid.UUID]CompletionCallback),
		now:       time.Now,
		logger:    logger,
	}
}

// InitializeTopic registers a fresh pending state with zeroed metrics and an
// empty message log for the topic. Re-initializing an existing id fully
// resets it. A non-positive planned duration is rejected so the message
// target formulas never divide by zero.
func (e *Engine) InitializeTopic(topic *entities.Topic) error {
	if topic.DurationMinutes <= 0 {
		return errors.ErrInvalidTopicDuration(topic.DurationMinutes)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.topics[topic.ID] = &topicRecord{
		state:   *entities.NewTopicState(topic),
		senders: make(map[string]struct{}),
	}
	return nil
}

// StartTopic transitions a topic to active, stamps the start time and resets
// the completion percentage. A completed topic cannot be restarted without
// an explicit reset.
func (e *Engine) StartTopic(topicID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.topics[topicID]
	if !ok {
		return e.unknownTopic("StartTopic", topicID)
	}
	if rec.state.Status == entities.TopicStatusCompleted {
		return errors.ErrTopicInvalidState(topicID.String(),
			string(rec.state.Status), string(entities.TopicStatusPending))
	}

	now := e.now()
	rec.state.Status = entities.TopicStatusActive
	rec.state.StartedAt = &now
	rec.state.CompletionPercent = 0
	return nil
}

// AddMessage appends the message to the topic's ordered log and recomputes
// all derived metrics. When the post-update state satisfies the completion
// predicate, the topic is completed as part of the same call.
func (e *Engine) AddMessage(topicID uuid.UUID, msg *entities.Message) error {
	e.mu.Lock()

	rec, ok := e.topics[topicID]
	if !ok {
		defer e.mu.Unlock()
		return e.unknownTopic("AddMessage", topicID)
	}

	rec.messages = append(rec.messages, *msg)
	rec.senders[msg.SenderID] = struct{}{}
	rec.totalWords += len(strings.Fields(msg.Text))
	rec.totalChars += utf8.RuneCountInString(msg.Text)

	rec.state.MessageCount = len(rec.messages)
	rec.state.ParticipantCount = len(rec.senders)
	rec.state.Metrics.TotalMessages = len(rec.messages)
	if msg.SenderID == entities.HumanSenderID {
		rec.state.Metrics.UserMessages++
	} else {
		rec.state.Metrics.AgentMessages++
	}
	rec.state.Metrics.AvgMessageLength = float64(rec.totalChars) / float64(len(rec.messages))
	rec.state.Metrics.RelevanceScore = relevanceScore(rec)
	rec.state.CompletionPercent = e.completionPercent(rec)

	var (
		cb    CompletionCallback
		final entities.TopicState
		fired bool
	)
	if rec.state.Status == entities.TopicStatusActive && e.completionPredicate(rec) {
		cb, final, fired = e.completeLocked(topicID, rec)
	}
	e.mu.Unlock()

	if fired && cb != nil {
		cb(topicID, final)
	}
	return nil
}

// CompleteTopic marks the topic completed, stamps the end time and actual
// duration, forces the completion percentage to 100 and invokes the
// registered completion callback. A pending topic must be started before it
// can be completed. Calling it again on a completed topic is a no-op.
func (e *Engine) CompleteTopic(topicID uuid.UUID) error {
	e.mu.Lock()

	rec, ok := e.topics[topicID]
	if !ok {
		defer e.mu.Unlock()
		return e.unknownTopic("CompleteTopic", topicID)
	}
	if rec.state.Status == entities.TopicStatusPending {
		e.mu.Unlock()
		return errors.ErrTopicInvalidState(topicID.String(),
			string(entities.TopicStatusPending), string(entities.TopicStatusActive))
	}

	cb, final, fired := e.completeLocked(topicID, rec)
	e.mu.Unlock()

	if fired && cb != nil {
		cb(topicID, final)
	}
	return nil
}

// completeLocked applies the completion transition under the engine lock and
// returns the callback to fire once the lock is released. Idempotent: an
// already-completed topic changes nothing and re-fires nothing.
func (e *Engine) completeLocked(topicID uuid.UUID, rec *topicRecord) (CompletionCallback, entities.TopicState, bool) {
	if rec.state.Status == entities.TopicStatusCompleted {
		return nil, entities.TopicState{}, false
	}

	now := e.now()
	rec.state.Status = entities.TopicStatusCompleted
	rec.state.EndedAt = &now
	if rec.state.StartedAt != nil {
		rec.state.ActualDurationMins = roundToDecimal(now.Sub(*rec.state.StartedAt).Minutes())
	}
	rec.state.CompletionPercent = 100

	if e.logger != nil {
		e.logger.Info("topic completed",
			zap.String("topic_id", topicID.String()),
			zap.Int("message_count", rec.state.MessageCount),
			zap.Float64("actual_duration_minutes", rec.state.ActualDurationMins),
		)
	}
	return e.callbacks[topicID], *rec.state.Clone(), true
}

// OnTopicComplete registers the single completion callback for a topic.
// Re-registering replaces the previous callback.
func (e *Engine) OnTopicComplete(topicID uuid.UUID, cb CompletionCallback) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.topics[topicID]; !ok {
		return e.unknownTopic("OnTopicComplete", topicID)
	}
	e.callbacks[topicID] = cb
	return nil
}

// ResetTopic returns the topic to pending with zeroed metrics, a cleared
// message log and no recorded start time
func (e *Engine) ResetTopic(topicID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.topics[topicID]
	if !ok {
		return e.unknownTopic("ResetTopic", topicID)
	}

	e.topics[topicID] = &topicRecord{
		state: entities.TopicState{
			TopicID:             rec.state.TopicID,
			Title:               rec.state.Title,
			Status:              entities.TopicStatusPending,
			PlannedDurationMins: rec.state.PlannedDurationMins,
		},
		senders: make(map[string]struct{}),
	}
	return nil
}

// GetTopicState returns an independent snapshot of the topic's state
func (e *Engine) GetTopicState(topicID uuid.UUID) (*entities.TopicState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.topics[topicID]
	if !ok {
		return nil, e.unknownTopic("GetTopicState", topicID)
	}
	return rec.state.Clone(), nil
}

// GetTopicMessages returns an independent copy of the topic's message log in
// insertion order
func (e *Engine) GetTopicMessages(topicID uuid.UUID) ([]entities.Message, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.topics[topicID]
	if !ok {
		return nil, e.unknownTopic("GetTopicMessages", topicID)
	}
	out := make([]entities.Message, len(rec.messages))
	copy(out, rec.messages)
	return out, nil
}

// GetAllTopicStates returns independent snapshots of every registered topic
func (e *Engine) GetAllTopicStates() []entities.TopicState {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]entities.TopicState, 0, len(e.topics))
	for _, rec := range e.topics {
		out = append(out, *rec.state.Clone())
	}
	return out
}

// GetProgressReport counts topics by status. Overall progress is the share
// of completed topics, 0 when no topics are registered.
func (e *Engine) GetProgressReport() entities.ProgressReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	report := entities.ProgressReport{TotalTopics: len(e.topics)}
	for _, rec := range e.topics {
		switch rec.state.Status {
		case entities.TopicStatusPending:
			report.PendingTopics++
		case entities.TopicStatusActive:
			report.ActiveTopics++
		case entities.TopicStatusCompleted:
			report.CompletedTopics++
		}
	}
	if report.TotalTopics > 0 {
		report.OverallProgress = int(math.Round(float64(report.CompletedTopics) / float64(report.TotalTopics) * 100))
	}
	return report
}

// unknownTopic logs and wraps the recoverable unknown-topic condition
func (e *Engine) unknownTopic(op string, topicID uuid.UUID) error {
	if e.logger != nil {
		e.logger.Warn("operation on unknown topic",
			zap.String("operation", op),
			zap.String("topic_id", topicID.String()),
		)
	}
	return errors.ErrTopicNotFound(topicID.String())
}

// targetMessageCount is the step function mapping planned duration to the
// expected number of messages for a fully discussed topic
func targetMessageCount(durationMinutes int) float64 {
	d := float64(durationMinutes)
	switch {
	case durationMinutes <= 5:
		return math.Max(4, d)
	case durationMinutes <= 10:
		return d * 1.2
	case durationMinutes <= 20:
		return d * 0.8
	default:
		return d * 0.6
	}
}

// relevanceScore derives the 0-100 relevance heuristic: average message
// word count against a 20-word baseline, plus participant-diversity bonuses
func relevanceScore(rec *topicRecord) int {
	if len(rec.messages) == 0 {
		return 0
	}

	avgWords := float64(rec.totalWords) / float64(len(rec.messages))
	score := math.Min(100, avgWords/20*100)
	if len(rec.senders) > 2 {
		score += 10
	}
	if len(rec.senders) > 3 {
		score += 10
	}
	return clampScore(int(math.Round(score)))
}

// completionPercent blends message-target progress (70-point weight) with
// elapsed-time progress (30-point weight, zero before the topic starts)
func (e *Engine) completionPercent(rec *topicRecord) int {
	target := targetMessageCount(rec.state.PlannedDurationMins)
	messageWeight := math.Min(100, float64(len(rec.messages))/target*70)

	timeWeight := 0.0
	if rec.state.StartedAt != nil {
		elapsed := e.now().Sub(*rec.state.StartedAt).Minutes()
		timeWeight = math.Min(100, elapsed/float64(rec.state.PlannedDurationMins)*30)
	}
	return clampScore(int(math.Round(messageWeight + timeWeight)))
}

// completionPredicate decides whether an active topic is done: the message
// target is reached and either the blended percentage is high enough or the
// conversation has clearly run long
func (e *Engine) completionPredicate(rec *topicRecord) bool {
	target := targetMessageCount(rec.state.PlannedDurationMins)
	count := float64(len(rec.messages))
	if count < target {
		return false
	}
	return rec.state.CompletionPercent >= 85 || count >= math.Max(target*1.5, 15)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundToDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
