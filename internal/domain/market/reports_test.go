package market

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskItemDecodesEachShape(t *testing.T) {
	raw := `["ok", {"risk":"r1","mitigation":"m1"}, {"other":"x"}, {"risk":"r2","mitigation":"m2","owner":"me"}, 42, {"risk":1,"mitigation":"m"}]`

	var items []RiskItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	want := []RiskItem{
		TextRisk("ok"),
		PairRisk("r1", "m1"),
		{Kind: RiskOpaque, Text: `{"other":"x"}`},
		{Kind: RiskOpaque, Text: `{"risk":"r2","mitigation":"m2","owner":"me"}`},
		{Kind: RiskOpaque, Text: `42`},
		{Kind: RiskOpaque, Text: `{"risk":1,"mitigation":"m"}`},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("risk items mismatch (-want +got):\n%s", diff)
	}
}

func TestRiskItemEncodesOpaqueAsString(t *testing.T) {
	items := []RiskItem{
		TextRisk("ok"),
		PairRisk("r1", "m1"),
		{Kind: RiskOpaque, Text: `{"other":"x"}`},
	}
	out, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, `["ok", {"risk":"r1","mitigation":"m1"}, "{\"other\":\"x\"}"]`, string(out))
}

func TestEnsureArraysReplacesNil(t *testing.T) {
	var s Strategies
	require.NoError(t, json.Unmarshal([]byte(`{"shortTerm":[{"title":"t"}],"longTerm":null,"riskMitigation":[]}`), &s))
	s.EnsureArrays()

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"shortTerm":[{"title":"t","description":"","timeline":"","kpis":[]}],
		"longTerm":[],
		"milestones":[],
		"riskMitigation":[]
	}`, string(out))
}

func TestParseReportType(t *testing.T) {
	rt, err := ParseReportType("strategies")
	require.NoError(t, err)
	assert.Equal(t, ReportStrategies, rt)

	_, err = ParseReportType("forecast")
	assert.Error(t, err)
}
