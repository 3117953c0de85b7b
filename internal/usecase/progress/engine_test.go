package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(zap.NewNop())
}

func newTestTopic(durationMinutes int) *entities.Topic {
	return entities.NewTopic(uuid.New(), "Quarterly budget", durationMinutes, entities.TopicPriorityMedium)
}

func testMessage(topicID uuid.UUID, senderID, text string) *entities.Message {
	return entities.NewMessage(topicID, senderID, text)
}

func TestInitializeTopicRejectsNonPositiveDuration(t *testing.T) {
	e := newTestEngine(t)

	for _, d := range []int{0, -1, -30} {
		topic := newTestTopic(d)
		err := e.InitializeTopic(topic)
		require.Error(t, err, "duration %d must be rejected", d)

		_, getErr := e.GetTopicState(topic.ID)
		assert.Error(t, getErr, "rejected topic must not be registered")
	}
}

func TestInitializeTopicIsIdempotentReset(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))
	require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-1", "hello there")))

	// Re-initializing fully resets, no merge
	require.NoError(t, e.InitializeTopic(topic))

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusPending, state.Status)
	assert.Zero(t, state.MessageCount)
	assert.Zero(t, state.ParticipantCount)
	assert.Nil(t, state.StartedAt)

	msgs, err := e.GetTopicMessages(topic.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestUnknownTopicIsRecoverable(t *testing.T) {
	e := newTestEngine(t)
	id := uuid.New()

	assert.Error(t, e.StartTopic(id))
	assert.Error(t, e.AddMessage(id, testMessage(id, "agent-1", "hi")))
	assert.Error(t, e.CompleteTopic(id))
	assert.Error(t, e.ResetTopic(id))
	assert.Error(t, e.OnTopicComplete(id, func(uuid.UUID, entities.TopicState) {}))

	_, err := e.GetTopicState(id)
	assert.Error(t, err)
}

func TestAddMessageIsAppendOnlyAndCountsParticipants(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(30)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))

	senders := []string{"agent-1", "agent-2", "agent-1", entities.HumanSenderID}
	for i, sender := range senders {
		require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, sender, "point taken")))

		msgs, err := e.GetTopicMessages(topic.ID)
		require.NoError(t, err)
		assert.Len(t, msgs, i+1, "log grows by exactly one per call")
	}

	msgs, err := e.GetTopicMessages(topic.ID)
	require.NoError(t, err)
	for i, m := range msgs {
		assert.Equal(t, senders[i], m.SenderID, "insertion order preserved")
	}

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, state.MessageCount)
	assert.Equal(t, 3, state.ParticipantCount)
	assert.Equal(t, 3, state.Metrics.AgentMessages)
	assert.Equal(t, 1, state.Metrics.UserMessages)
}

func TestRelevanceScoreClampedWithBonuses(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(30)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))

	// 25 words per message maxes the base score; four distinct senders stack
	// both +10 bonuses on top, which must clamp back to 100.
	longText := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty twentyone twentytwo twentythree twentyfour twentyfive"
	for _, sender := range []string{"agent-1", "agent-2", "agent-3", entities.HumanSenderID} {
		require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, sender, longText)))
	}

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, state.Metrics.RelevanceScore)
	assert.LessOrEqual(t, state.CompletionPercent, 100)
}

func TestRelevanceScoreShortMessages(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(30)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))

	// 5 words per message: base = 5/20*100 = 25, two senders so no bonus
	require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-1", "this needs a closer look")))
	require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-2", "agreed let us dig in")))

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, state.Metrics.RelevanceScore)
}

// Duration 10 gives target 12; hitting the target with no elapsed time gives
// exactly the 70-point message weight, which is below the 85% completion
// threshold, so the topic stays active.
func TestCompletionPercentMessageWeightOnly(t *testing.T) {
	e := newTestEngine(t)
	fixed := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))

	for i := 0; i < 12; i++ {
		require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-1", "short reply")))
	}

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, state.CompletionPercent)
	assert.Equal(t, entities.TopicStatusActive, state.Status)
}

// Duration 5 gives target 5; with 4.25 minutes elapsed the time weight is
// 25.5 on top of the 70-point message weight, so the fifth message pushes
// the topic over the threshold and completes it inside AddMessage.
func TestAutoCompletionInsideAddMessage(t *testing.T) {
	e := newTestEngine(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	current := start
	e.now = func() time.Time { return current }

	topic := newTestTopic(5)
	require.NoError(t, e.InitializeTopic(topic))

	var callbackStates []entities.TopicState
	require.NoError(t, e.OnTopicComplete(topic.ID, func(id uuid.UUID, final entities.TopicState) {
		assert.Equal(t, topic.ID, id)
		callbackStates = append(callbackStates, final)
	}))

	require.NoError(t, e.StartTopic(topic.ID))

	for i := 0; i < 4; i++ {
		require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-1", "ok")))
	}
	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	require.Equal(t, entities.TopicStatusActive, state.Status)

	current = start.Add(4*time.Minute + 15*time.Second)
	require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-2", "ok")))

	state, err = e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusCompleted, state.Status)
	assert.Equal(t, 100, state.CompletionPercent)
	assert.InDelta(t, 4.3, state.ActualDurationMins, 0.001)
	require.NotNil(t, state.EndedAt)

	require.Len(t, callbackStates, 1, "callback fires synchronously, exactly once")
	assert.Equal(t, entities.TopicStatusCompleted, callbackStates[0].Status)
}

func TestCompleteTopicRequiresStartedTopic(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))

	fired := 0
	require.NoError(t, e.OnTopicComplete(topic.ID, func(uuid.UUID, entities.TopicState) { fired++ }))

	// pending topics only ever move forward through an explicit start
	assert.Error(t, e.CompleteTopic(topic.ID))
	assert.Zero(t, fired)

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusPending, state.Status)
	assert.Nil(t, state.EndedAt)

	require.NoError(t, e.StartTopic(topic.ID))
	require.NoError(t, e.CompleteTopic(topic.ID))
	assert.Equal(t, 1, fired)
}

func TestCompleteTopicIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	current := start
	e.now = func() time.Time { return current }

	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))

	fired := 0
	require.NoError(t, e.OnTopicComplete(topic.ID, func(uuid.UUID, entities.TopicState) { fired++ }))
	require.NoError(t, e.StartTopic(topic.ID))

	current = start.Add(3 * time.Minute)
	require.NoError(t, e.CompleteTopic(topic.ID))

	first, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)

	// A later second call must not move timestamps or re-fire the callback
	current = start.Add(20 * time.Minute)
	require.NoError(t, e.CompleteTopic(topic.ID))

	second, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, first.EndedAt, second.EndedAt)
	assert.Equal(t, first.ActualDurationMins, second.ActualDurationMins)
	assert.Equal(t, 1, fired)
}

func TestOnTopicCompleteReplacesCallback(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))

	firstFired, secondFired := 0, 0
	require.NoError(t, e.OnTopicComplete(topic.ID, func(uuid.UUID, entities.TopicState) { firstFired++ }))
	require.NoError(t, e.OnTopicComplete(topic.ID, func(uuid.UUID, entities.TopicState) { secondFired++ }))

	require.NoError(t, e.StartTopic(topic.ID))
	require.NoError(t, e.CompleteTopic(topic.ID))

	assert.Zero(t, firstFired)
	assert.Equal(t, 1, secondFired)
}

func TestCompletionCallbackMayReenterEngine(t *testing.T) {
	e := newTestEngine(t)
	first := newTestTopic(10)
	second := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(first))
	require.NoError(t, e.InitializeTopic(second))

	require.NoError(t, e.OnTopicComplete(first.ID, func(uuid.UUID, entities.TopicState) {
		require.NoError(t, e.StartTopic(second.ID))
	}))

	require.NoError(t, e.StartTopic(first.ID))
	require.NoError(t, e.CompleteTopic(first.ID))

	state, err := e.GetTopicState(second.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusActive, state.Status)
}

func TestResetTopicReturnsToPending(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))
	require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-1", "first point")))
	require.NoError(t, e.CompleteTopic(topic.ID))

	require.NoError(t, e.ResetTopic(topic.ID))

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusPending, state.Status)
	assert.Zero(t, state.MessageCount)
	assert.Zero(t, state.ParticipantCount)
	assert.Zero(t, state.CompletionPercent)
	assert.Zero(t, state.Metrics.RelevanceScore)
	assert.Nil(t, state.StartedAt)
	assert.Nil(t, state.EndedAt)

	msgs, err := e.GetTopicMessages(topic.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// Completed -> active is only reachable through reset
	assert.NoError(t, e.StartTopic(topic.ID))
}

func TestSnapshotsAreDefensiveCopies(t *testing.T) {
	e := newTestEngine(t)
	topic := newTestTopic(10)
	require.NoError(t, e.InitializeTopic(topic))
	require.NoError(t, e.StartTopic(topic.ID))
	require.NoError(t, e.AddMessage(topic.ID, testMessage(topic.ID, "agent-1", "original")))

	state, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	state.Status = entities.TopicStatusCompleted
	state.MessageCount = 99
	*state.StartedAt = state.StartedAt.Add(time.Hour)

	msgs, err := e.GetTopicMessages(topic.ID)
	require.NoError(t, err)
	msgs[0].Text = "tampered"

	fresh, err := e.GetTopicState(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TopicStatusActive, fresh.Status)
	assert.Equal(t, 1, fresh.MessageCount)

	freshMsgs, err := e.GetTopicMessages(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", freshMsgs[0].Text)
}

func TestProgressReport(t *testing.T) {
	e := newTestEngine(t)
	assert.Zero(t, e.GetProgressReport().OverallProgress, "no topics means zero progress")

	topics := []*entities.Topic{newTestTopic(10), newTestTopic(10), newTestTopic(10)}
	for _, tp := range topics {
		require.NoError(t, e.InitializeTopic(tp))
	}
	require.NoError(t, e.StartTopic(topics[0].ID))
	require.NoError(t, e.CompleteTopic(topics[0].ID))
	require.NoError(t, e.StartTopic(topics[1].ID))

	report := e.GetProgressReport()
	assert.Equal(t, 3, report.TotalTopics)
	assert.Equal(t, 1, report.PendingTopics)
	assert.Equal(t, 1, report.ActiveTopics)
	assert.Equal(t, 1, report.CompletedTopics)
	assert.Equal(t, 33, report.OverallProgress)
}

func TestTargetMessageCount(t *testing.T) {
	cases := []struct {
		duration int
		want     float64
	}{
		{1, 4},
		{5, 5},
		{6, 7.2},
		{10, 12},
		{15, 12},
		{20, 16},
		{30, 18},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, targetMessageCount(tc.duration), 0.0001, "duration %d", tc.duration)
	}
}
