package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
)

func TestAbsentFieldsRenderAsNA(t *testing.T) {
	out := BusinessPlan(plan.Input{BusinessName: "Chai Point", Industry: "Food", BusinessIdea: "tea", TargetMarket: "office"})
	assert.Contains(t, out, "Business name: Chai Point")
	assert.Contains(t, out, "Competition: N/A")
	assert.Contains(t, out, "Location: N/A")
	assert.Contains(t, out, `"financialProjections"`)
}

func TestStrategiesEmbedsPriorReports(t *testing.T) {
	p := &plan.BusinessPlan{BusinessName: "Chai Point"}
	out := Strategies(p, json.RawMessage(`{"trends":["x"]}`), nil)
	assert.Contains(t, out, `Previous market analysis: {"trends":["x"]}`)
	assert.Contains(t, out, "Previous recommendations: N/A")
	assert.Contains(t, out, `"riskMitigation"`)
}

func TestComplianceItemsListsKnownTitles(t *testing.T) {
	out := ComplianceItems("food", "", []string{"GST registration", "FSSAI licence"})
	assert.Contains(t, out, "State: N/A")
	assert.True(t, strings.Contains(out, "Already known: GST registration; FSSAI licence"))
}

func TestSystemMentionsINR(t *testing.T) {
	assert.Contains(t, System(), "INR")
}
