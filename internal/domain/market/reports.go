package market

import (
	"bytes"
	"encoding/json"
	"errors"
)

type MarketSize struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	GrowthRate string  `json:"growthRate"`
}

type Segment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Size        string `json:"size"`
}

type Competitor struct {
	Name        string   `json:"name"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	MarketShare string   `json:"marketShare"`
}

// Analysis is the "analysis" report.
type Analysis struct {
	MarketSize     MarketSize   `json:"marketSize"`
	TargetSegments []Segment    `json:"targetSegments"`
	Competitors    []Competitor `json:"competitors"`
	Trends         []string     `json:"trends"`
	Opportunities  []string     `json:"opportunities"`
	Threats        []string     `json:"threats"`
}

var AnalysisRequired = []string{"marketSize", "targetSegments", "competitors", "trends"}

func (a *Analysis) EnsureArrays() {
	a.TargetSegments = orEmpty(a.TargetSegments)
	a.Competitors = orEmpty(a.Competitors)
	for i := range a.Competitors {
		a.Competitors[i].Strengths = orEmpty(a.Competitors[i].Strengths)
		a.Competitors[i].Weaknesses = orEmpty(a.Competitors[i].Weaknesses)
	}
	a.Trends = orEmpty(a.Trends)
	a.Opportunities = orEmpty(a.Opportunities)
	a.Threats = orEmpty(a.Threats)
}

type PricingStrategy struct {
	Approach   string `json:"approach"`
	Details    string `json:"details"`
	PriceRange string `json:"priceRange"`
}

type Channel struct {
	Name      string `json:"name"`
	Rationale string `json:"rationale"`
	Priority  string `json:"priority"`
}

type Action struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Timeline      string  `json:"timeline"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// Recommendations is the "recommendations" report.
type Recommendations struct {
	PricingStrategy  PricingStrategy `json:"pricingStrategy"`
	Channels         []Channel       `json:"channels"`
	MarketingActions []Action        `json:"marketingActions"`
	QuickWins        []string        `json:"quickWins"`
}

var RecommendationsRequired = []string{"pricingStrategy", "channels", "marketingActions"}

func (r *Recommendations) EnsureArrays() {
	r.Channels = orEmpty(r.Channels)
	r.MarketingActions = orEmpty(r.MarketingActions)
	r.QuickWins = orEmpty(r.QuickWins)
}

type Strategy struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timeline    string   `json:"timeline"`
	KPIs        []string `json:"kpis"`
}

type Milestone struct {
	Title  string `json:"title"`
	Month  int    `json:"month"`
	Metric string `json:"metric"`
}

// Strategies is the "strategies" report.
type Strategies struct {
	ShortTerm      []Strategy  `json:"shortTerm"`
	LongTerm       []Strategy  `json:"longTerm"`
	Milestones     []Milestone `json:"milestones"`
	RiskMitigation []RiskItem  `json:"riskMitigation"`
}

var StrategiesRequired = []string{"shortTerm", "longTerm", "riskMitigation"}

func (s *Strategies) EnsureArrays() {
	s.ShortTerm = orEmpty(s.ShortTerm)
	for i := range s.ShortTerm {
		s.ShortTerm[i].KPIs = orEmpty(s.ShortTerm[i].KPIs)
	}
	s.LongTerm = orEmpty(s.LongTerm)
	for i := range s.LongTerm {
		s.LongTerm[i].KPIs = orEmpty(s.LongTerm[i].KPIs)
	}
	s.Milestones = orEmpty(s.Milestones)
	s.RiskMitigation = orEmpty(s.RiskMitigation)
}

// RiskKind tags which shape a risk-mitigation entry arrived in.
type RiskKind int

const (
	RiskText   RiskKind = iota // plain string
	RiskPair                   // {"risk": ..., "mitigation": ...}
	RiskOpaque                 // any other JSON value, kept as its JSON text
)

// RiskItem is one riskMitigation entry. The model may answer with a string or
// an object; the shape is resolved once when decoding.
type RiskItem struct {
	Kind       RiskKind
	Text       string
	Risk       string
	Mitigation string
}

func TextRisk(s string) RiskItem { return RiskItem{Kind: RiskText, Text: s} }

func PairRisk(risk, mitigation string) RiskItem {
	return RiskItem{Kind: RiskPair, Risk: risk, Mitigation: mitigation}
}

func (r *RiskItem) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty risk item")
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = TextRisk(s)
		return nil
	}

	if b[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(b, &fields); err == nil && len(fields) == 2 {
			var risk, mitigation string
			rawRisk, okRisk := fields["risk"]
			rawMit, okMit := fields["mitigation"]
			if okRisk && okMit &&
				json.Unmarshal(rawRisk, &risk) == nil &&
				json.Unmarshal(rawMit, &mitigation) == nil {
				*r = PairRisk(risk, mitigation)
				return nil
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		return err
	}
	*r = RiskItem{Kind: RiskOpaque, Text: compact.String()}
	return nil
}

func (r RiskItem) MarshalJSON() ([]byte, error) {
	if r.Kind == RiskPair {
		return json.Marshal(struct {
			Risk       string `json:"risk"`
			Mitigation string `json:"mitigation"`
		}{r.Risk, r.Mitigation})
	}
	return json.Marshal(r.Text)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
