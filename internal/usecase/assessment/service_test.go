package assessment

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	"github.com/johnquangdev/boardroom-simulator/internal/infrastructure/cache"
)

type stubGenerator struct {
	result *entities.AssessmentResult
	err    error
	calls  int
}

func (g *stubGenerator) Evaluate(_ context.Context, _ string, _ map[string]interface{}, _ map[string]entities.CategoryScoreResult) (*entities.AssessmentResult, error) {
	g.calls++
	return g.result, g.err
}

func financialInput() EvaluateInput {
	return EvaluateInput{
		Domain:   entities.AssessmentDomainFinancial,
		Proposal: "Expand the retail analytics product into the DACH region",
		Context: entities.NewAssessmentContext().
			SetNumber("expected_roi_percent", 30).
			SetNumber("payback_months", 10).
			SetNumber("budget_usd", 200_000),
	}
}

func TestEvaluateProposalSuccess(t *testing.T) {
	gen := &stubGenerator{result: &entities.AssessmentResult{
		Verdict:         entities.VerdictApprove,
		Confidence:      88,
		Reasoning:       "strong return profile with a fast payback",
		Concerns:        []string{"budget assumes stable FX rates"},
		Recommendations: []string{"stage the rollout by country"},
	}}
	svc := NewService(NewEngine(zap.NewNop()), gen, nil, nil, zap.NewNop())

	eval, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)
	assert.False(t, eval.Fallback)
	assert.Equal(t, entities.VerdictApprove, eval.Result.Verdict)
	assert.Equal(t, 100.0, eval.CategoryScores["roi_analysis"].Score)
	assert.Equal(t, 1, gen.calls)
}

func TestGeneratorFailureYieldsExactFallback(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("llm timeout")}
	svc := NewService(NewEngine(zap.NewNop()), gen, nil, nil, zap.NewNop())

	eval, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err, "generator failure never propagates to the caller")

	assert.True(t, eval.Fallback)
	assert.Equal(t, entities.VerdictNeutral, eval.Result.Verdict)
	assert.Equal(t, 50.0, eval.Result.Confidence)
	assert.Equal(t, "analysis failed", eval.Result.Reasoning)
	assert.Equal(t, []string{"unable to complete full analysis"}, eval.Result.Concerns)
	assert.Equal(t, []string{"retry with updated context"}, eval.Result.Recommendations)

	assert.Equal(t, 1, gen.calls, "a single attempt, no automatic retry")
	assert.NotNil(t, eval.CategoryScores, "category scores survive the fallback")
}

func TestMalformedVerdictYieldsFallback(t *testing.T) {
	cases := []*entities.AssessmentResult{
		nil,
		{Verdict: entities.Verdict("maybe"), Confidence: 70},
		{Verdict: entities.VerdictApprove, Confidence: 180},
		{Verdict: entities.VerdictApprove, Confidence: -5},
	}
	for i, result := range cases {
		gen := &stubGenerator{result: result}
		svc := NewService(NewEngine(zap.NewNop()), gen, nil, nil, zap.NewNop())

		eval, err := svc.EvaluateProposal(context.Background(), financialInput())
		require.NoError(t, err, "case %d", i)
		assert.True(t, eval.Fallback, "case %d", i)
		assert.Equal(t, entities.VerdictNeutral, eval.Result.Verdict, "case %d", i)
	}
}

func TestNilGeneratorYieldsFallback(t *testing.T) {
	svc := NewService(NewEngine(zap.NewNop()), nil, nil, nil, zap.NewNop())

	eval, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)
	assert.True(t, eval.Fallback)
}

func TestEmptyProposalRejected(t *testing.T) {
	svc := NewService(NewEngine(zap.NewNop()), &stubGenerator{}, nil, nil, zap.NewNop())

	input := financialInput()
	input.Proposal = "   "
	_, err := svc.EvaluateProposal(context.Background(), input)
	assert.Error(t, err)
}

func TestUnknownDomainRejectedByService(t *testing.T) {
	svc := NewService(NewEngine(zap.NewNop()), &stubGenerator{}, nil, nil, zap.NewNop())

	input := financialInput()
	input.Domain = entities.AssessmentDomain("astrology")
	_, err := svc.EvaluateProposal(context.Background(), input)
	assert.Error(t, err)
}

func TestSequenceIsMonotonic(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("down")}
	svc := NewService(NewEngine(zap.NewNop()), gen, nil, nil, zap.NewNop())

	first, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)

	input := financialInput()
	input.Proposal = "A different proposal entirely"
	second, err := svc.EvaluateProposal(context.Background(), input)
	require.NoError(t, err)

	assert.Greater(t, second.Sequence, first.Sequence)
}

func TestSuccessfulEvaluationsAreCached(t *testing.T) {
	gen := &stubGenerator{result: &entities.AssessmentResult{
		Verdict:    entities.VerdictReject,
		Confidence: 75,
		Reasoning:  "payback is too slow for the declared risk",
	}}
	svc := NewService(NewEngine(zap.NewNop()), gen, nil, cache.NewMemoryStore(), zap.NewNop())

	first, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)
	second, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls, "identical request served from cache")
	assert.Equal(t, first.Result.Verdict, second.Result.Verdict)
}

func TestFallbacksAreNotCached(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("down")}
	svc := NewService(NewEngine(zap.NewNop()), gen, nil, cache.NewMemoryStore(), zap.NewNop())

	_, err := svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)
	_, err = svc.EvaluateProposal(context.Background(), financialInput())
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls, "a failed narrative may be attempted again on a new request")
}
