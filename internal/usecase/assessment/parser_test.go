package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
)

func TestParseVerdictFromMarkdownFence(t *testing.T) {
	p := NewParser()

	raw := "```json\n" + `{
  "verdict": "approve",
  "confidence": 82,
  "reasoning": "the return profile justifies the spend",
  "concerns": ["fx exposure"],
  "recommendations": ["phase the rollout"]
}` + "\n```"

	result, err := p.ParseVerdictJSONResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, entities.VerdictApprove, result.Verdict)
	assert.Equal(t, 82.0, result.Confidence)
	assert.Equal(t, []string{"fx exposure"}, result.Concerns)
}

func TestParseVerdictFromBareJSON(t *testing.T) {
	p := NewParser()

	result, err := p.ParseVerdictJSONResponse(`{"verdict":"reject","confidence":40,"reasoning":"payback too slow"}`)
	require.NoError(t, err)
	assert.Equal(t, entities.VerdictReject, result.Verdict)
}

func TestParseVerdictRejectsBadResponses(t *testing.T) {
	p := NewParser()

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "the proposal looks fine to me"},
		{"unknown verdict", `{"verdict":"maybe","confidence":50,"reasoning":"hmm"}`},
		{"confidence too high", `{"verdict":"approve","confidence":140,"reasoning":"sure"}`},
		{"negative confidence", `{"verdict":"approve","confidence":-1,"reasoning":"sure"}`},
		{"missing reasoning", `{"verdict":"approve","confidence":70}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.ParseVerdictJSONResponse(tc.raw)
			assert.Error(t, err)
		})
	}
}
