package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
)

// System provides strict directions shared by every generation request.
func System() string {
	return `You are an experienced business advisor for women entrepreneurs and small businesses in India. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema given in the user message. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- All amounts are in INR as plain numbers, with no currency symbol and no thousands separators.
- Keep text practical, specific to India, and concise.`
}

// na renders absent fields as a placeholder instead of an empty string.
func na(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return strings.TrimSpace(s)
}

func profile(p plan.Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business name: %s\n", na(p.BusinessName))
	fmt.Fprintf(&b, "Industry: %s\n", na(p.Industry))
	fmt.Fprintf(&b, "Business idea: %s\n", na(p.BusinessIdea))
	fmt.Fprintf(&b, "Target market: %s\n", na(p.TargetMarket))
	fmt.Fprintf(&b, "Products/services: %s\n", na(p.ProductsServices))
	fmt.Fprintf(&b, "Competition: %s\n", na(p.Competition))
	fmt.Fprintf(&b, "Market size: %s\n", na(p.MarketSize))
	fmt.Fprintf(&b, "Initial investment (INR): %s\n", na(p.InitialInvestment))
	fmt.Fprintf(&b, "Location: %s\n", na(p.Location))
	return b.String()
}

// InputOf extracts the user-supplied fields of a stored plan.
func InputOf(p *plan.BusinessPlan) plan.Input {
	return plan.Input{
		BusinessName:      p.BusinessName,
		Industry:          p.Industry,
		BusinessIdea:      p.BusinessIdea,
		TargetMarket:      p.TargetMarket,
		ProductsServices:  p.ProductsServices,
		Competition:       p.Competition,
		MarketSize:        p.MarketSize,
		InitialInvestment: p.InitialInvestment,
		Location:          p.Location,
	}
}

// BusinessPlan asks for all five narrative sections at once.
func BusinessPlan(in plan.Input) string {
	return `Write a business plan for the business below.

` + profile(in) + `
Respond with JSON per this schema. Each value is markdown text of 150-300 words.
{
  "executiveSummary": "<string>",
  "marketAnalysis": "<string>",
  "operations": "<string>",
  "marketing": "<string>",
  "financialProjections": "<string>"
}`
}

// RegenerateSection asks for a fresh version of one section.
func RegenerateSection(p *plan.BusinessPlan, section plan.SectionName, feedback string) string {
	current := ""
	if sec := p.Sections.Get(section); sec != nil {
		current = sec.Content
	}
	return fmt.Sprintf(`Rewrite the "%s" section of the business plan below.

%s
Current section:
%s

Feedback from the owner: %s

Respond with JSON per this schema. The content is markdown text of 150-300 words.
{"content": "<string>"}`, section.Title(), profile(InputOf(p)), na(current), na(feedback))
}

// MarketAnalysis builds the "analysis" report prompt.
func MarketAnalysis(p *plan.BusinessPlan) string {
	return `Analyse the market for the business below.

` + profile(InputOf(p)) + `
Respond with JSON per this schema:
{
  "marketSize": {"value": <number, INR>, "unit": "<crore|lakh>", "growthRate": "<string, e.g. 12% CAGR>"},
  "targetSegments": [{"name": "<string>", "description": "<string>", "size": "<string>"}],
  "competitors": [{"name": "<string>", "strengths": ["<string>"], "weaknesses": ["<string>"], "marketShare": "<string>"}],
  "trends": ["<string>"],
  "opportunities": ["<string>"],
  "threats": ["<string>"]
}`
}

// Recommendations builds the "recommendations" report prompt, grounded on the
// cached analysis when there is one.
func Recommendations(p *plan.BusinessPlan, analysis json.RawMessage) string {
	return `Recommend how the business below should price, sell and market itself.

` + profile(InputOf(p)) + `
Previous market analysis: ` + rawOrNA(analysis) + `

Respond with JSON per this schema:
{
  "pricingStrategy": {"approach": "<string>", "details": "<string>", "priceRange": "<string>"},
  "channels": [{"name": "<string>", "rationale": "<string>", "priority": "<high|medium|low>"}],
  "marketingActions": [{"title": "<string>", "description": "<string>", "timeline": "<string>", "estimatedCost": <number, INR>}],
  "quickWins": ["<string>"]
}`
}

// Strategies builds the "strategies" report prompt.
func Strategies(p *plan.BusinessPlan, analysis, recommendations json.RawMessage) string {
	return `Draft growth strategies for the business below.

` + profile(InputOf(p)) + `
Previous market analysis: ` + rawOrNA(analysis) + `
Previous recommendations: ` + rawOrNA(recommendations) + `

Respond with JSON per this schema. Each riskMitigation entry may be either a plain string or an object {"risk": "<string>", "mitigation": "<string>"}.
{
  "shortTerm": [{"title": "<string>", "description": "<string>", "timeline": "<string>", "kpis": ["<string>"]}],
  "longTerm": [{"title": "<string>", "description": "<string>", "timeline": "<string>", "kpis": ["<string>"]}],
  "milestones": [{"title": "<string>", "month": <integer>, "metric": "<string>"}],
  "riskMitigation": ["<string or {risk, mitigation}>"]
}`
}

// FinancialForecast builds the forecast prompt.
func FinancialForecast(p *plan.BusinessPlan) string {
	return `Prepare a three year financial forecast for the business below.

` + profile(InputOf(p)) + `
Respond with JSON per this schema:
{
  "currency": "INR",
  "years": [{"year": <integer, 1-3>, "revenue": <number>, "expenses": <number>, "profit": <number>}],
  "breakEvenMonth": <integer>,
  "fundingRequired": <number>,
  "assumptions": ["<string>"]
}`
}

// ComplianceItems asks for the registrations and licences a business needs.
// Existing titles are listed so the model focuses on what is missing.
func ComplianceItems(businessType, state string, existing []string) string {
	known := "N/A"
	if len(existing) > 0 {
		known = strings.Join(existing, "; ")
	}
	return fmt.Sprintf(`List the legal registrations, licences and filings required for this business in India.

Business type: %s
State: %s
Already known: %s

Respond with JSON per this schema:
{
  "items": [{
    "title": "<string>",
    "description": "<string>",
    "category": "<registration|tax|licence|labour|other>",
    "priority": "<high|medium|low>",
    "steps": ["<string>"],
    "fees": "<string>",
    "timeline": "<string>",
    "links": [{"title": "<string>", "url": "<string>"}]
  }]
}`, na(businessType), na(state), known)
}

// LegalChat answers a compliance question.
func LegalChat(question, businessType, state string) string {
	return fmt.Sprintf(`Answer this compliance question from a small business owner in India.

Business type: %s
State: %s
Question: %s

Respond with JSON per this schema:
{"answer": "<string, markdown>", "references": ["<string>"], "disclaimer": "<string>"}`,
		na(businessType), na(state), na(question))
}

func rawOrNA(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "N/A"
	}
	return string(raw)
}
