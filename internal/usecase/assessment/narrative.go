package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// ChatCompleter is the low-level text-completion dependency behind the
// LLM-backed narrative generator
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMNarrativeGenerator implements NarrativeGenerator by prompting a chat
// model and parsing its JSON verdict. It makes no retry decisions of its
// own; errors propagate to the assessment service, which substitutes the
// fallback result.
type LLMNarrativeGenerator struct {
	client ChatCompleter
	parser *Parser
	logger *zap.Logger
}

// NewLLMNarrativeGenerator constructs an LLM-backed narrative generator
func NewLLMNarrativeGenerator(client ChatCompleter, logger *zap.Logger) *LLMNarrativeGenerator {
	return &LLMNarrativeGenerator{
		client: client,
		parser: NewParser(),
		logger: logger,
	}
}

// Evaluate prompts the model with the proposal, context fields and category
// scores and parses the returned verdict
func (g *LLMNarrativeGenerator) Evaluate(
	ctx context.Context,
	proposal string,
	fields map[string]interface{},
	scores map[string]entities.CategoryScoreResult,
) (*entities.AssessmentResult, error) {
	prompt, err := buildVerdictPrompt(proposal, fields, scores)
	if err != nil {
		return nil, err
	}

	content, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := g.parser.ParseVerdictJSONResponse(content)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("narrative response rejected", zap.Error(err))
		}
		return nil, err
	}
	return result, nil
}

// buildVerdictPrompt renders the structured inputs into the verdict prompt
func buildVerdictPrompt(proposal string, fields map[string]interface{}, scores map[string]entities.CategoryScoreResult) (string, error) {
	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", err
	}
	scoresJSON, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are reviewing a business proposal. Using the proposal text, the declared context fields, and the weighted category scores below, return ONLY a JSON object with these keys:
  "verdict": one of "approve", "reject", "neutral"
  "confidence": a number from 0 to 100
  "reasoning": a short paragraph explaining the verdict
  "concerns": an array of concern strings
  "recommendations": an array of recommendation strings

Proposal:
%s

Context fields:
%s

Category scores:
%s`, proposal, fieldsJSON, scoresJSON), nil
}
