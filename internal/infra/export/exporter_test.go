package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
)

func samplePlan() *plan.BusinessPlan {
	at := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	p := &plan.BusinessPlan{
		BusinessName: "Kala & Co",
		Industry:     "Handicrafts",
		TargetMarket: "Urban women",
		BusinessIdea: "Block-printed home linen",
	}
	p.InitSections(map[plan.SectionName]string{
		plan.SectionExecutiveSummary:     "We sell **hand-printed** linen.",
		plan.SectionMarketAnalysis:       "Growing demand.<script>alert(1)</script>",
		plan.SectionOperations:           "Two artisans.",
		plan.SectionMarketing:            "Instagram first.",
		plan.SectionFinancialProjections: "",
	}, at)
	_, err := p.ApplySection(plan.SectionMarketing, "Instagram and WhatsApp.", plan.SourceManual, at.Add(time.Hour))
	if err != nil {
		panic(err)
	}
	return p
}

func TestMarkdownOrder(t *testing.T) {
	md := Markdown(samplePlan())

	assert.True(t, strings.HasPrefix(md, "# Kala & Co\n"))
	last := -1
	for _, name := range plan.SectionNames {
		i := strings.Index(md, "## "+name.Title())
		require.GreaterOrEqual(t, i, 0, name)
		assert.Greater(t, i, last, "sections keep display order")
		last = i
	}
	assert.Contains(t, md, "Instagram and WhatsApp.")
	assert.Contains(t, md, "_Not generated yet._")
}

func TestHTML(t *testing.T) {
	body, ctype, err := New().Export(samplePlan(), "html")
	require.NoError(t, err)
	assert.Equal(t, TypeHTML, ctype)

	out := string(body)
	assert.Contains(t, out, "<title>Kala &amp; Co - Business Plan</title>")
	assert.Contains(t, out, "<h2>Executive Summary</h2>")
	assert.Contains(t, out, "<strong>hand-printed</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestXLSX(t *testing.T) {
	body, ctype, err := New().Export(samplePlan(), "xlsx")
	require.NoError(t, err)
	assert.Equal(t, TypeXLSX, ctype)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetPlan, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Kala & Co", v)

	rows, err := f.GetRows(sheetPlan)
	require.NoError(t, err)
	var marketing []string
	for _, r := range rows {
		if len(r) > 0 && r[0] == "Marketing Strategy" {
			marketing = r
		}
	}
	require.Len(t, marketing, 4)
	assert.Equal(t, "2", marketing[1])
	assert.Equal(t, "Instagram and WhatsApp.", marketing[3])

	history, err := f.GetRows(sheetHistory)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"Marketing Strategy", "2", "manual", "2026-02-01T09:00:00Z", "Instagram and WhatsApp."}, history[1])
}

func TestUnsupportedFormat(t *testing.T) {
	_, _, err := New().Export(samplePlan(), "pdf")
	assert.Error(t, err)
}
