package plan

import (
	"fmt"
	"strings"
	"time"
)

// SectionName identifies one of the five generated narrative sections.
type SectionName string

const (
	SectionExecutiveSummary     SectionName = "executiveSummary"
	SectionMarketAnalysis       SectionName = "marketAnalysis"
	SectionOperations           SectionName = "operations"
	SectionMarketing            SectionName = "marketing"
	SectionFinancialProjections SectionName = "financialProjections"
)

// SectionNames in display order.
var SectionNames = []SectionName{
	SectionExecutiveSummary,
	SectionMarketAnalysis,
	SectionOperations,
	SectionMarketing,
	SectionFinancialProjections,
}

func ParseSectionName(s string) (SectionName, error) {
	for _, n := range SectionNames {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Title is the human-readable heading used in exports.
func (n SectionName) Title() string {
	switch n {
	case SectionExecutiveSummary:
		return "Executive Summary"
	case SectionMarketAnalysis:
		return "Market Analysis"
	case SectionOperations:
		return "Operations Plan"
	case SectionMarketing:
		return "Marketing Strategy"
	case SectionFinancialProjections:
		return "Financial Projections"
	default:
		return string(n)
	}
}

// Source of a section revision.
const (
	SourceAI     = "ai"
	SourceManual = "manual"
)

type Section struct {
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"lastUpdated"`
	Version     int       `json:"version"`
}

type Sections struct {
	ExecutiveSummary     Section `json:"executiveSummary"`
	MarketAnalysis       Section `json:"marketAnalysis"`
	Operations           Section `json:"operations"`
	Marketing            Section `json:"marketing"`
	FinancialProjections Section `json:"financialProjections"`
}

// Get returns a pointer to the named section.
func (s *Sections) Get(name SectionName) *Section {
	switch name {
	case SectionExecutiveSummary:
		return &s.ExecutiveSummary
	case SectionMarketAnalysis:
		return &s.MarketAnalysis
	case SectionOperations:
		return &s.Operations
	case SectionMarketing:
		return &s.Marketing
	case SectionFinancialProjections:
		return &s.FinancialProjections
	}
	return nil
}

type VersionEntry struct {
	Section   SectionName `json:"section"`
	Version   int         `json:"version"`
	Content   string      `json:"content"`
	Source    string      `json:"source"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// BusinessPlan is one user's venture description plus its generated sections.
type BusinessPlan struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId"`
	BusinessName      string         `json:"businessName"`
	Industry          string         `json:"industry"`
	BusinessIdea      string         `json:"businessIdea"`
	TargetMarket      string         `json:"targetMarket"`
	ProductsServices  string         `json:"productsServices,omitempty"`
	Competition       string         `json:"competition,omitempty"`
	MarketSize        string         `json:"marketSize,omitempty"`
	InitialInvestment string         `json:"initialInvestment,omitempty"`
	Location          string         `json:"location,omitempty"`
	Sections          Sections       `json:"sections"`
	VersionHistory    []VersionEntry `json:"versionHistory"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Input carries the user-supplied fields of a plan.
type Input struct {
	BusinessName      string `json:"businessName"`
	Industry          string `json:"industry"`
	BusinessIdea      string `json:"businessIdea"`
	TargetMarket      string `json:"targetMarket"`
	ProductsServices  string `json:"productsServices"`
	Competition       string `json:"competition"`
	MarketSize        string `json:"marketSize"`
	InitialInvestment string `json:"initialInvestment"`
	Location          string `json:"location"`
}

// Missing lists the required fields that are blank, in JSON names.
func (in Input) Missing() []string {
	var out []string
	for _, f := range []struct{ name, v string }{
		{"businessName", in.BusinessName},
		{"industry", in.Industry},
		{"businessIdea", in.BusinessIdea},
		{"targetMarket", in.TargetMarket},
	} {
		if strings.TrimSpace(f.v) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

// InitSections sets every section to its first generated version.
func (p *BusinessPlan) InitSections(contents map[SectionName]string, at time.Time) {
	for _, name := range SectionNames {
		*p.Sections.Get(name) = Section{Content: contents[name], LastUpdated: at, Version: 1}
	}
	if p.VersionHistory == nil {
		p.VersionHistory = []VersionEntry{}
	}
}

// ApplySection replaces a section's content, bumps its version by one and
// appends exactly one history entry.
func (p *BusinessPlan) ApplySection(name SectionName, content, source string, at time.Time) (Section, error) {
	sec := p.Sections.Get(name)
	if sec == nil {
		return Section{}, fmt.Errorf("unknown section %q", name)
	}
	sec.Content = content
	sec.Version++
	sec.LastUpdated = at
	p.VersionHistory = append(p.VersionHistory, VersionEntry{
		Section:   name,
		Version:   sec.Version,
		Content:   content,
		Source:    source,
		UpdatedAt: at,
	})
	p.UpdatedAt = at
	return *sec, nil
}
