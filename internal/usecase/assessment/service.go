package assessment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/repositories"
	"github.com/johnquangdev/boardroom-simulator/internal/infrastructure/cache"
	"github.com/johnquangdev/boardroom-simulator/pkg/jobcontext"
)

const (
	// narrativeTimeout bounds the single narrative attempt
	narrativeTimeout = 2 * time.Minute
	// cacheTTL is how long a successful evaluation stays cached
	cacheTTL = time.Hour
	// maxConcurrentNarratives limits in-flight narrative calls so the
	// long-latency LLM path never starves the rest of the service
	maxConcurrentNarratives = 4
)

// EvaluateInput is one proposal evaluation request
type EvaluateInput struct {
	SessionID *uuid.UUID
	Domain    entities.AssessmentDomain
	Proposal  string
	Context   *entities.AssessmentContext
}

// Evaluation bundles the category scores with the final (or fallback)
// verdict. Sequence is a monotonically increasing stamp: a caller holding an
// evaluation from before a topic/session reset can detect it is stale by
// comparing sequence numbers instead of assuming any ordering between the
// reset and the in-flight narrative call.
type Evaluation struct {
	Domain         entities.AssessmentDomain               `json:"domain"`
	CategoryScores map[string]entities.CategoryScoreResult `json:"category_scores"`
	Result         *entities.AssessmentResult              `json:"result"`
	Fallback       bool                                    `json:"fallback"`
	Sequence       uint64                                  `json:"sequence"`
}

// Service defines the proposal assessment use case
type Service interface {
	EvaluateProposal(ctx context.Context, input EvaluateInput) (*Evaluation, error)
}

type service struct {
	engine    *Engine
	generator NarrativeGenerator
	repo      repositories.AssessmentRepository
	store     cache.Store
	logger    *zap.Logger
	sequence  atomic.Uint64
	slots     chan struct{}
}

// NewService constructs the assessment service. The repository and cache
// store are optional; when nil, evaluations are neither archived nor cached.
func NewService(
	engine *Engine,
	generator NarrativeGenerator,
	repo repositories.AssessmentRepository,
	store cache.Store,
	logger *zap.Logger,
) Service {
	return &service{
		engine:    engine,
		generator: generator,
		repo:      repo,
		store:     store,
		logger:    logger,
		slots:     make(chan struct{}, maxConcurrentNarratives),
	}
}

// EvaluateProposal scores the proposal against the domain's sub-analyses and
// asks the narrative generator for the final verdict. Generator failures are
// replaced by the fixed fallback result exactly once and never retried; the
// caller only ever sees well-formed output.
func (s *service) EvaluateProposal(ctx context.Context, input EvaluateInput) (*Evaluation, error) {
	if strings.TrimSpace(input.Proposal) == "" {
		return nil, errors.ErrEmptyProposal()
	}
	actx := input.Context
	if actx == nil {
		actx = entities.NewAssessmentContext()
	}

	scores, err := s.engine.Score(input.Domain, actx)
	if err != nil {
		return nil, err
	}

	cacheKey := evaluationCacheKey(input.Domain, input.Proposal, actx)
	if cached, ok := s.cachedEvaluation(ctx, cacheKey); ok {
		return cached, nil
	}

	eval := &Evaluation{
		Domain:         input.Domain,
		CategoryScores: scores,
		Sequence:       s.sequence.Add(1),
	}
	eval.Result, eval.Fallback = s.generateNarrative(ctx, input.Proposal, actx, scores)

	s.archiveEvaluation(ctx, input, actx, eval)
	if !eval.Fallback {
		s.cacheEvaluation(ctx, cacheKey, eval)
	}
	return eval, nil
}

// generateNarrative makes the single narrative attempt on a bounded worker
// slot and substitutes the fixed fallback result on any failure, including
// malformed output
func (s *service) generateNarrative(
	ctx context.Context,
	proposal string,
	actx *entities.AssessmentContext,
	scores map[string]entities.CategoryScoreResult,
) (*entities.AssessmentResult, bool) {
	if s.generator == nil {
		return entities.FallbackAssessmentResult(), true
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, uuid.New(), "narrative_verdict", 0, narrativeTimeout)
	defer cancel()

	s.slots <- struct{}{}
	defer func() { <-s.slots }()

	result, err := s.generator.Evaluate(jobCtx, proposal, actx.Fields(), scores)
	if err == nil && result != nil && result.Verdict.IsValid() &&
		result.Confidence >= 0 && result.Confidence <= 100 {
		return result, false
	}

	if s.logger != nil {
		meta := jobcontext.GetJobMetadata(jobCtx)
		s.logger.Warn("narrative generation failed, substituting fallback verdict",
			zap.String("job_id", meta.JobID.String()),
			zap.Duration("elapsed", time.Since(meta.StartTime)),
			zap.Error(err),
		)
	}
	return entities.FallbackAssessmentResult(), true
}

// archiveEvaluation persists the record best effort; archive failures never
// surface to the caller
func (s *service) archiveEvaluation(ctx context.Context, input EvaluateInput, actx *entities.AssessmentContext, eval *Evaluation) {
	if s.repo == nil {
		return
	}

	fields, _ := json.Marshal(actx.Fields())
	categoryScores, _ := json.Marshal(eval.CategoryScores)
	concerns, _ := json.Marshal(eval.Result.Concerns)

	record := &entities.AssessmentRecord{
		ID:             uuid.New(),
		SessionID:      input.SessionID,
		Domain:         input.Domain,
		Proposal:       input.Proposal,
		ContextFields:  datatypes.JSON(fields),
		CategoryScores: datatypes.JSON(categoryScores),
		Verdict:        eval.Result.Verdict,
		Confidence:     eval.Result.Confidence,
		Reasoning:      eval.Result.Reasoning,
		Concerns:       datatypes.JSON(concerns),
		Fallback:       eval.Fallback,
		Sequence:       eval.Sequence,
	}
	if err := s.repo.CreateAssessment(ctx, record); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to archive assessment", zap.Error(err))
		}
	}
}

func (s *service) cachedEvaluation(ctx context.Context, key string) (*Evaluation, bool) {
	if s.store == nil {
		return nil, false
	}
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var eval Evaluation
	if err := json.Unmarshal([]byte(raw), &eval); err != nil {
		return nil, false
	}
	return &eval, true
}

func (s *service) cacheEvaluation(ctx context.Context, key string, eval *Evaluation) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(eval)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, string(raw), cacheTTL); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to cache evaluation", zap.Error(err))
		}
	}
}

// evaluationCacheKey hashes domain, proposal and context fields so identical
// requests hit the cache
func evaluationCacheKey(domain entities.AssessmentDomain, proposal string, actx *entities.AssessmentContext) string {
	fields, _ := json.Marshal(actx.Fields())
	sum := sha256.Sum256([]byte(string(domain) + "|" + proposal + "|" + string(fields)))
	return "assessment:" + hex.EncodeToString(sum[:])
}
