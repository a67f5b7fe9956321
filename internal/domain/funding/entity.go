package funding

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Scheme is a government or institutional financing program.
type Scheme struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Description  string    `json:"description"`
	Industries   []string  `json:"industries"`
	MaxAmount    float64   `json:"maxAmount"` // INR, 0 = uncapped
	InterestRate string    `json:"interestRate"`
	WomenFocused bool      `json:"womenFocused"`
	Eligibility  []string  `json:"eligibility"`
	Link         string    `json:"link"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Covers reports whether the scheme can fund amount for industry.
func (s *Scheme) Covers(industry string, amount float64) bool {
	if !industryListed(s.Industries, industry) {
		return false
	}
	return s.MaxAmount == 0 || s.MaxAmount >= amount
}

func industryListed(list []string, industry string) bool {
	for _, i := range list {
		if strings.EqualFold(i, "all") || strings.EqualFold(i, industry) {
			return true
		}
	}
	return false
}

// Eligible filters schemes for a plan, women-focused schemes first, then by name.
func Eligible(schemes []*Scheme, industry string, amount float64) []*Scheme {
	out := make([]*Scheme, 0, len(schemes))
	for _, s := range schemes {
		if s.Covers(industry, amount) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WomenFocused != out[j].WomenFocused {
			return out[i].WomenFocused
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type YearProjection struct {
	Year     int     `json:"year"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// Forecast is the generated financial projection for a plan.
type Forecast struct {
	Currency        string           `json:"currency"`
	Years           []YearProjection `json:"years"`
	BreakEvenMonth  int              `json:"breakEvenMonth"`
	FundingRequired float64          `json:"fundingRequired"`
	Assumptions     []string         `json:"assumptions"`
}

var ForecastRequired = []string{"years", "breakEvenMonth", "fundingRequired"}

func (f *Forecast) EnsureArrays() {
	if f.Years == nil {
		f.Years = []YearProjection{}
	}
	if f.Assumptions == nil {
		f.Assumptions = []string{}
	}
	if f.Currency == "" {
		f.Currency = "INR"
	}
}

type Repository interface {
	List(ctx context.Context) ([]*Scheme, error)
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, items []*Scheme) error
}
