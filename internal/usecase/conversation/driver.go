package conversation

import (
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// ResponseStrategy produces the next line for one simulated participant.
// Implementations cycle a pool of canned responses.
type ResponseStrategy interface {
	NextResponse(topic entities.Topic) string
}

// StrategyFactory builds a fresh strategy instance for one participant.
// Each participant gets its own instance so pool cursors do not interleave.
type StrategyFactory func() ResponseStrategy

// pooledStrategy cycles through its response pool in order, substituting
// the topic title into each template
type pooledStrategy struct {
	pool   []string
	cursor int
}

func (s *pooledStrategy) NextResponse(topic entities.Topic) string {
	line := s.pool[s.cursor%len(s.pool)]
	s.cursor++
	return fmt.Sprintf(line, topic.Title)
}

func poolFactory(pool []string) StrategyFactory {
	return func() ResponseStrategy {
		return &pooledStrategy{pool: pool}
	}
}

// DefaultRegistry returns the built-in role registry. Roles are resolved
// here once at setup; an unknown role fails fast instead of falling through
// to a generic speaker.
func DefaultRegistry() map[entities.ParticipantRole]StrategyFactory {
	return map[entities.ParticipantRole]StrategyFactory{
		entities.ParticipantRoleFacilitator: poolFactory([]string{
			"Let's keep the discussion on %s focused. What does everyone think about the key trade-offs?",
			"Good points so far on %s. Can we hear from someone who hasn't weighed in yet?",
			"We're making progress on %s. Let me summarize where we stand before we continue.",
			"Before we close out %s, are there any concerns we haven't addressed?",
		}),
		entities.ParticipantRoleAnalyst: poolFactory([]string{
			"Looking at the numbers behind %s, the unit economics need a closer look before we commit.",
			"The data on %s suggests a phased approach would reduce our downside exposure.",
			"I ran a quick comparison for %s against last quarter's baseline and the trend is encouraging.",
			"For %s we should quantify the opportunity cost of waiting another quarter.",
		}),
		entities.ParticipantRoleSkeptic: poolFactory([]string{
			"I'm not convinced %s accounts for the integration costs we saw last time.",
			"What happens to %s if the market assumptions are off by twenty percent?",
			"Has anyone stress-tested %s against a downturn scenario?",
			"The timeline for %s looks optimistic given our current capacity.",
		}),
		entities.ParticipantRoleOptimist: poolFactory([]string{
			"%s is exactly the kind of bet that got us where we are today.",
			"The upside on %s far outweighs the risks we've discussed.",
			"If we move quickly on %s we can get ahead of the competition.",
			"I think %s opens doors beyond the immediate return.",
		}),
	}
}

type speaker struct {
	participant entities.Participant
	strategy    ResponseStrategy
}

// Driver picks which simulated participant speaks next and supplies the
// message text. Speaker selection uses an injectable seeded source so
// sequences are reproducible.
type Driver struct {
	mu       sync.Mutex
	speakers []speaker
	rng      *rand.Rand
	logger   *zap.Logger
}

// NewDriver resolves each agent participant's role against the registry.
// Human participants are skipped; they speak through AddUserMessage, not
// the driver.
func NewDriver(participants []entities.Participant, registry map[entities.ParticipantRole]StrategyFactory, rng *rand.Rand, logger *zap.Logger) (*Driver, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	speakers := make([]speaker, 0, len(participants))
	for _, p := range participants {
		if p.IsHuman() {
			continue
		}
		factory, ok := registry[p.Role]
		if !ok {
			return nil, apperrors.ErrUnknownParticipantRole(string(p.Role))
		}
		speakers = append(speakers, speaker{participant: p, strategy: factory()})
	}
	if len(speakers) == 0 {
		return nil, apperrors.ErrNoAgentParticipants()
	}

	return &Driver{
		speakers: speakers,
		rng:      rng,
		logger:   logger,
	}, nil
}

// NextMessage picks a speaker at random and returns their next line as a
// message on the given topic
func (d *Driver) NextMessage(topic entities.Topic) *entities.Message {
	d.mu.Lock()
	s := d.speakers[d.rng.Intn(len(d.speakers))]
	text := s.strategy.NextResponse(topic)
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.Debug("simulated turn",
			zap.String("topic_id", topic.ID.String()),
			zap.String("speaker", s.participant.Name),
			zap.String("role", string(s.participant.Role)))
	}
	return entities.NewMessage(topic.ID, s.participant.SenderID, text)
}
