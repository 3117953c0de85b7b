package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

type stubSessionRepo struct {
	records []*entities.SessionRecord
}

func (r *stubSessionRepo) CreateSessionRecord(_ context.Context, record *entities.SessionRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *stubSessionRepo) GetSessionRecordByID(_ context.Context, id uuid.UUID) (*entities.SessionRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (r *stubSessionRepo) ListSessionRecords(_ context.Context, _ int) ([]*entities.SessionRecord, error) {
	return r.records, nil
}

type stubExporter struct {
	uploads int
	err     error
}

func (e *stubExporter) UploadTranscript(_ context.Context, sessionID string, _ []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.uploads++
	return "minio://transcripts/" + sessionID + ".json", nil
}

func boardWizard() *Wizard {
	w := NewWizard()
	w.SetDetails("Q3 planning", "Sam")
	w.AddTopic(TopicDraft{Title: "Alpha expansion", DurationMinutes: 5, Priority: entities.TopicPriorityHigh})
	w.AddTopic(TopicDraft{Title: "Beta sunset", DurationMinutes: 5, Priority: entities.TopicPriorityLow})
	w.AddParticipant(ParticipantDraft{Name: "Morgan", Role: entities.ParticipantRoleFacilitator})
	w.AddParticipant(ParticipantDraft{Name: "Riley", Role: entities.ParticipantRoleSkeptic})
	return w
}

func TestWizardValidatesEachStep(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StepDetails, w.Step())
	assert.Error(t, w.Next(), "empty details are rejected")

	w.SetDetails("Q3 planning", "Sam")
	require.NoError(t, w.Next())
	assert.Equal(t, StepTopics, w.Step())

	assert.Error(t, w.Next(), "at least one topic is required")
	w.AddTopic(TopicDraft{Title: "Alpha", DurationMinutes: 0})
	assert.Error(t, w.Next(), "non-positive durations are rejected")

	w.topics = nil
	w.AddTopic(TopicDraft{Title: "Alpha", DurationMinutes: 10})
	require.NoError(t, w.Next())
	assert.Equal(t, StepParticipants, w.Step())

	assert.Error(t, w.Next(), "simulated participants are required")
	w.AddParticipant(ParticipantDraft{Name: "Morgan", Role: entities.ParticipantRoleFacilitator})
	require.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step())

	w.Back()
	assert.Equal(t, StepParticipants, w.Step())
}

func TestWizardBuildIncludesHumanParticipant(t *testing.T) {
	session, topics, err := boardWizard().Build()
	require.NoError(t, err)

	assert.Len(t, session.Participants, 3)
	assert.True(t, session.Participants[0].IsHuman())
	assert.Len(t, topics, 2)
	for _, topic := range topics {
		assert.Equal(t, session.ID, topic.SessionID)
		assert.Equal(t, entities.TopicStatusPending, topic.Status)
	}
}

func TestCreateSessionFillsDefaultRoster(t *testing.T) {
	svc := NewService(nil, nil, 42, 3, zap.NewNop())

	w := NewWizard()
	w.SetDetails("Q3 planning", "Sam")
	w.AddTopic(TopicDraft{Title: "Alpha expansion", DurationMinutes: 5, Priority: entities.TopicPriorityHigh})

	session, err := svc.CreateSession(w)
	require.NoError(t, err)

	require.Len(t, session.Participants, 4, "human plus the configured agent count")
	assert.True(t, session.Participants[0].IsHuman())
	roles := make([]entities.ParticipantRole, 0, 3)
	for _, p := range session.Participants[1:] {
		roles = append(roles, p.Role)
	}
	assert.Equal(t, []entities.ParticipantRole{
		entities.ParticipantRoleFacilitator,
		entities.ParticipantRoleAnalyst,
		entities.ParticipantRoleSkeptic,
	}, roles)
}

func TestDefaultRosterCyclesRolesPastFour(t *testing.T) {
	svc := NewService(nil, nil, 42, 6, zap.NewNop())

	w := NewWizard()
	w.SetDetails("Q3 planning", "Sam")
	w.AddTopic(TopicDraft{Title: "Alpha expansion", DurationMinutes: 5, Priority: entities.TopicPriorityHigh})

	session, err := svc.CreateSession(w)
	require.NoError(t, err)

	require.Len(t, session.Participants, 7)
	names := make(map[string]struct{})
	for _, p := range session.Participants {
		_, dup := names[p.Name]
		assert.False(t, dup, "roster names stay distinct: %s", p.Name)
		names[p.Name] = struct{}{}
	}
	assert.Equal(t, entities.ParticipantRoleFacilitator, session.Participants[5].Role)
}

func TestStartSessionActivatesHighestPriorityTopic(t *testing.T) {
	svc := NewService(nil, nil, 42, 0, zap.NewNop())
	session, err := svc.CreateSession(boardWizard())
	require.NoError(t, err)

	require.NoError(t, svc.StartSession(session.ID))

	got, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive())

	report, err := svc.GetProgress(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ActiveTopics)
	assert.Equal(t, 1, report.PendingTopics)
}

// Seven messages on a 5-minute topic push the blended completion percentage
// past the threshold (7/5*70 = 98), so the agenda advances to the next
// pending topic without an explicit CompleteTopic call.
func TestAgendaAutoAdvancesOnTopicCompletion(t *testing.T) {
	svc := NewService(nil, nil, 42, 0, zap.NewNop())
	session, err := svc.CreateSession(boardWizard())
	require.NoError(t, err)
	require.NoError(t, svc.StartSession(session.ID))

	for i := 0; i < 2; i++ {
		_, err := svc.AddUserMessage(session.ID, "I want to dig into the numbers behind this one")
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := svc.AdvanceConversation(session.ID)
		require.NoError(t, err)
	}

	report, err := svc.GetProgress(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.CompletedTopics, "first topic completed itself")
	assert.Equal(t, 1, report.ActiveTopics, "next topic took over")
	assert.Equal(t, 0, report.PendingTopics)
	assert.Equal(t, 50, report.OverallProgress)

	// seven more turns exhaust the agenda
	for i := 0; i < 7; i++ {
		_, err := svc.AdvanceConversation(session.ID)
		require.NoError(t, err)
	}
	_, err = svc.AdvanceConversation(session.ID)
	assert.Error(t, err, "no active topic once the agenda is exhausted")
}

func TestResetAndReopenTopic(t *testing.T) {
	svc := NewService(nil, nil, 42, 0, zap.NewNop())
	session, err := svc.CreateSession(boardWizard())
	require.NoError(t, err)
	require.NoError(t, svc.StartSession(session.ID))

	msg, err := svc.AdvanceConversation(session.ID)
	require.NoError(t, err)
	topicID := msg.TopicID

	require.NoError(t, svc.ResetTopic(session.ID, topicID))

	state, err := svc.GetTopicState(session.ID, topicID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusPending, state.Status)
	assert.Zero(t, state.MessageCount)

	_, err = svc.AdvanceConversation(session.ID)
	assert.Error(t, err, "the reset topic is no longer active")

	require.NoError(t, svc.ReopenTopic(session.ID, topicID))
	_, err = svc.AdvanceConversation(session.ID)
	assert.NoError(t, err)
}

func TestEndSessionArchivesAndExports(t *testing.T) {
	repo := &stubSessionRepo{}
	exporter := &stubExporter{}
	svc := NewService(repo, exporter, 42, 0, zap.NewNop())

	session, err := svc.CreateSession(boardWizard())
	require.NoError(t, err)
	require.NoError(t, svc.StartSession(session.ID))
	for i := 0; i < 3; i++ {
		_, err := svc.AdvanceConversation(session.ID)
		require.NoError(t, err)
	}

	ended, err := svc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionStatusEnded, ended.Status)
	assert.NotNil(t, ended.EndedAt)

	require.Len(t, repo.records, 1)
	record := repo.records[0]
	assert.Equal(t, session.ID, record.ID)
	assert.Equal(t, entities.SessionStatusEnded, record.Status)
	require.NotNil(t, record.TranscriptURL)
	assert.Contains(t, *record.TranscriptURL, session.ID.String())
	assert.Equal(t, 1, exporter.uploads)

	_, err = svc.EndSession(context.Background(), session.ID)
	assert.Error(t, err, "a session ends once")
}

func TestEndSessionSurvivesExportFailure(t *testing.T) {
	repo := &stubSessionRepo{}
	exporter := &stubExporter{err: fmt.Errorf("bucket unreachable")}
	svc := NewService(repo, exporter, 42, 0, zap.NewNop())

	session, err := svc.CreateSession(boardWizard())
	require.NoError(t, err)
	require.NoError(t, svc.StartSession(session.ID))

	_, err = svc.EndSession(context.Background(), session.ID)
	require.NoError(t, err, "transcript export is best-effort")
	require.Len(t, repo.records, 1)
	assert.Nil(t, repo.records[0].TranscriptURL)
}

func TestUnknownSessionIsRejected(t *testing.T) {
	svc := NewService(nil, nil, 1, 0, zap.NewNop())

	_, err := svc.AddUserMessage(uuid.New(), "hello")
	assert.Error(t, err)
	assert.Error(t, svc.StartSession(uuid.New()))
	_, err = svc.EndSession(context.Background(), uuid.New())
	assert.Error(t, err)
}
