package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

// Parser handles parsing and validation of narrative model responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseVerdictJSONResponse parses the JSON response from the narrative model
// into an AssessmentResult. The model might wrap the JSON in markdown code
// blocks.
func (p *Parser) ParseVerdictJSONResponse(jsonString string) (*entities.AssessmentResult, error) {
	jsonString = extractJSON(jsonString)

	var result entities.AssessmentResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	// Validate required fields
	if !result.Verdict.IsValid() {
		return nil, fmt.Errorf("invalid verdict %q in response", result.Verdict)
	}
	if result.Confidence < 0 || result.Confidence > 100 {
		return nil, fmt.Errorf("confidence %v out of range", result.Confidence)
	}
	if result.Reasoning == "" {
		return nil, fmt.Errorf("missing reasoning in response")
	}

	return &result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
