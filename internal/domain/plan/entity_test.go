package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlan(at time.Time) *BusinessPlan {
	p := &BusinessPlan{ID: "p1", UserID: "u1", BusinessName: "Chai Point"}
	p.InitSections(map[SectionName]string{
		SectionExecutiveSummary:     "summary",
		SectionMarketAnalysis:       "market",
		SectionOperations:           "ops",
		SectionMarketing:            "marketing",
		SectionFinancialProjections: "money",
	}, at)
	return p
}

func TestInitSectionsStartsAtVersionOne(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newPlan(at)

	for _, name := range SectionNames {
		sec := p.Sections.Get(name)
		require.NotNil(t, sec)
		assert.Equal(t, 1, sec.Version, name)
		assert.Equal(t, at, sec.LastUpdated, name)
	}
	assert.Empty(t, p.VersionHistory)
	assert.NotNil(t, p.VersionHistory)
}

func TestApplySectionTwiceIncrementsByOneEach(t *testing.T) {
	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	p := newPlan(at)

	first, err := p.ApplySection(SectionMarketing, "v2", SourceAI, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Version)
	require.Len(t, p.VersionHistory, 1)

	second, err := p.ApplySection(SectionMarketing, "v3", SourceManual, at.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, second.Version)
	require.Len(t, p.VersionHistory, 2)

	last := p.VersionHistory[1]
	assert.Equal(t, SectionMarketing, last.Section)
	assert.Equal(t, 3, last.Version)
	assert.Equal(t, "v3", last.Content)
	assert.Equal(t, SourceManual, last.Source)
	assert.Equal(t, "v3", p.Sections.Marketing.Content)
	assert.Equal(t, 1, p.Sections.Operations.Version, "other sections untouched")
	assert.Equal(t, at.Add(2*time.Hour), p.UpdatedAt)
}

func TestApplySectionUnknown(t *testing.T) {
	p := newPlan(time.Now())
	_, err := p.ApplySection("appendix", "x", SourceAI, time.Now())
	assert.Error(t, err)
	assert.Empty(t, p.VersionHistory)
}

func TestParseSectionName(t *testing.T) {
	n, err := ParseSectionName("financialProjections")
	require.NoError(t, err)
	assert.Equal(t, SectionFinancialProjections, n)
	assert.Equal(t, "Financial Projections", n.Title())

	_, err = ParseSectionName("FinancialProjections")
	assert.Error(t, err)
}

func TestInputMissing(t *testing.T) {
	assert.Equal(t, []string{"industry", "targetMarket"}, Input{BusinessName: "x", BusinessIdea: "y", TargetMarket: "  "}.Missing())
	assert.Empty(t, Input{BusinessName: "a", Industry: "b", BusinessIdea: "c", TargetMarket: "d"}.Missing())
}
