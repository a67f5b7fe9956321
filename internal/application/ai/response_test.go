package ai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/market"
)

type riskOnly struct {
	RiskMitigation []market.RiskItem `json:"riskMitigation"`
}

func TestNormalizeFencedRiskMitigation(t *testing.T) {
	raw := "```json\n{\"riskMitigation\":[\"ok\", {\"risk\":\"r1\",\"mitigation\":\"m1\"}, {\"other\":\"x\"}]}\n```"

	got, err := Normalize[riskOnly](raw, []string{"riskMitigation"})
	require.NoError(t, err)
	require.Len(t, got.RiskMitigation, 3)

	assert.Equal(t, market.TextRisk("ok"), got.RiskMitigation[0])
	assert.Equal(t, market.PairRisk("r1", "m1"), got.RiskMitigation[1])
	assert.Equal(t, market.RiskOpaque, got.RiskMitigation[2].Kind)
	assert.Equal(t, `{"other":"x"}`, got.RiskMitigation[2].Text)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"riskMitigation":["ok",{"risk":"r1","mitigation":"m1"},"{\"other\":\"x\"}"]}`, string(out))
}

func TestNormalizeProseAroundObject(t *testing.T) {
	raw := "Sure! Here is your report:\n{\"content\": \"new text {with braces}\"}\nHope this helps."
	got, err := Normalize[struct {
		Content string `json:"content"`
	}](raw, []string{"content"})
	require.NoError(t, err)
	assert.Equal(t, "new text {with braces}", got.Content)
}

func TestNormalizeFailures(t *testing.T) {
	cases := map[string]string{
		"no braces":      "I cannot help with that.",
		"reversed":       "} nothing {",
		"malformed":      `{"shortTerm": [1, 2,], }`,
		"missing key":    `{"shortTerm": [], "longTerm": []}`,
		"null key":       `{"shortTerm": [], "longTerm": [], "riskMitigation": null}`,
		"type mismatch":  `{"shortTerm": "soon", "longTerm": [], "riskMitigation": []}`,
		"top level list": `[{"a": 1}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize[market.Strategies](raw, market.StrategiesRequired)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))
			assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
			assert.Equal(t, "could not parse AI response", apperr.Message(err))
		})
	}
}

func TestNormalizeEnsuresArrays(t *testing.T) {
	raw := `{"marketSize":{"value":1200,"unit":"crore","growthRate":"9%"},"targetSegments":[],"competitors":[{"name":"A"}],"trends":["digital"]}`
	got, err := Normalize[market.Analysis](raw, market.AnalysisRequired)
	require.NoError(t, err)

	assert.NotNil(t, got.Opportunities)
	assert.NotNil(t, got.Threats)
	assert.NotNil(t, got.Competitors[0].Strengths)
	assert.Equal(t, 1200.0, got.MarketSize.Value)
}
