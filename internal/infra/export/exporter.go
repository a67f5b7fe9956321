// Package export renders business plans as markdown, HTML or XLSX.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
)

const (
	TypeMarkdown = "text/markdown; charset=utf-8"
	TypeHTML     = "text/html; charset=utf-8"
	TypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Exporter implements plan.Exporter.
type Exporter struct {
	md goldmark.Markdown
}

func New() *Exporter {
	return &Exporter{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (e *Exporter) Export(p *plan.BusinessPlan, format string) ([]byte, string, error) {
	switch format {
	case "md":
		return []byte(Markdown(p)), TypeMarkdown, nil
	case "html":
		b, err := e.HTML(p)
		return b, TypeHTML, err
	case "xlsx":
		b, err := XLSX(p)
		return b, TypeXLSX, err
	}
	return nil, "", fmt.Errorf("unsupported format %q", format)
}

// Markdown renders the plan profile followed by the five sections in order.
func Markdown(p *plan.BusinessPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.BusinessName)

	profile := []struct{ label, v string }{
		{"Industry", p.Industry},
		{"Target market", p.TargetMarket},
		{"Products and services", p.ProductsServices},
		{"Location", p.Location},
		{"Initial investment", p.InitialInvestment},
	}
	for _, f := range profile {
		if f.v != "" {
			fmt.Fprintf(&b, "- **%s:** %s\n", f.label, f.v)
		}
	}
	if p.BusinessIdea != "" {
		fmt.Fprintf(&b, "\n> %s\n", p.BusinessIdea)
	}

	for _, name := range plan.SectionNames {
		sec := p.Sections.Get(name)
		fmt.Fprintf(&b, "\n## %s\n\n", name.Title())
		if strings.TrimSpace(sec.Content) == "" {
			b.WriteString("_Not generated yet._\n")
			continue
		}
		b.WriteString(strings.TrimSpace(sec.Content))
		b.WriteString("\n")
	}
	return b.String()
}

// HTML converts the markdown export. Raw HTML inside section content is
// dropped by goldmark's default renderer.
func (e *Exporter) HTML(p *plan.BusinessPlan) ([]byte, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(Markdown(p)), &body); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	var out bytes.Buffer
	out.WriteString("<!doctype html><html><head><meta charset='utf-8'><title>")
	out.WriteString(html.EscapeString(p.BusinessName))
	out.WriteString(" - Business Plan</title>")
	out.WriteString("<style>body{font-family:sans-serif;max-width:860px;margin:2rem auto;line-height:1.5;padding:0 1rem}" +
		"h1{color:#7c2d12}h2{border-bottom:1px solid #e7e5e4;padding-bottom:.25rem}" +
		"table{border-collapse:collapse}th,td{border:1px solid #a8a29e;padding:.3rem .5rem}</style>")
	out.WriteString("</head><body>")
	out.Write(body.Bytes())
	out.WriteString("</body></html>")
	return out.Bytes(), nil
}

const (
	sheetPlan    = "Plan"
	sheetHistory = "History"
)

// XLSX writes one row per section and one row per history entry.
func XLSX(p *plan.BusinessPlan) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetPlan); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetHistory); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Business", p.BusinessName},
		{"Industry", p.Industry},
		{"Target market", p.TargetMarket},
		{},
		{"Section", "Version", "Last updated", "Content"},
	}
	for _, name := range plan.SectionNames {
		sec := p.Sections.Get(name)
		rows = append(rows, []any{name.Title(), sec.Version, stamp(sec.LastUpdated), sec.Content})
	}
	if err := writeRows(f, sheetPlan, rows); err != nil {
		return nil, err
	}
	header := len(rows) - len(plan.SectionNames)
	_ = f.SetCellStyle(sheetPlan, "A1", "A3", bold)
	_ = f.SetCellStyle(sheetPlan, cell(0, header), cell(3, header), bold)
	_ = f.SetCellStyle(sheetPlan, cell(3, header+1), cell(3, len(rows)), wrap)
	_ = f.SetColWidth(sheetPlan, "A", "A", 24)
	_ = f.SetColWidth(sheetPlan, "C", "C", 22)
	_ = f.SetColWidth(sheetPlan, "D", "D", 100)

	history := [][]any{{"Section", "Version", "Source", "Updated at", "Content"}}
	for _, h := range p.VersionHistory {
		history = append(history, []any{h.Section.Title(), h.Version, h.Source, stamp(h.UpdatedAt), h.Content})
	}
	if err := writeRows(f, sheetHistory, history); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetHistory, "A1", "E1", bold)
	_ = f.SetColWidth(sheetHistory, "E", "E", 100)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		row := r
		if err := f.SetSheetRow(sheet, cell(0, i+1), &row); err != nil {
			return err
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
