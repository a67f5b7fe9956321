package marketplace

import (
	"math"
	"sort"
	"strings"
)

// Weights of the additive scoring rules. Zero values are not defaulted here;
// callers get them from config.
type Weights struct {
	Industry           int
	ProductType        int
	TargetMarket       int
	RatingMultiplier   float64
	ExcellentThreshold int
	GoodThreshold      int
	TopN               int
}

// DefaultWeights are 30/25/20 plus rating x 5, tiers at 75 and 50, top 5.
var DefaultWeights = Weights{
	Industry:           30,
	ProductType:        25,
	TargetMarket:       20,
	RatingMultiplier:   5,
	ExcellentThreshold: 75,
	GoodThreshold:      50,
	TopN:               5,
}

// Profile is the part of a business plan the matcher reads.
type Profile struct {
	Industry         string
	ProductsServices string
	TargetMarket     string
}

type Match struct {
	Marketplace *Marketplace `json:"marketplace"`
	Score       int          `json:"score"`
	Reasons     []string     `json:"reasons"`
}

const maxReasons = 3

// Score computes the match score of one marketplace for the profile, plus the
// rule sentences that contributed to it.
func Score(w Weights, p Profile, m *Marketplace) (int, []string) {
	var total float64
	var hits []string

	if containsExact(m.Industries, p.Industry) {
		total += float64(w.Industry)
		hits = append(hits, "Serves the "+p.Industry+" industry")
	}
	if t, ok := firstSubstring(m.ProductTypes, p.ProductsServices); ok {
		total += float64(w.ProductType)
		hits = append(hits, "Lists products like "+t)
	}
	if t, ok := firstSubstring(m.TargetMarkets, p.TargetMarket); ok {
		total += float64(w.TargetMarket)
		hits = append(hits, "Reaches "+t+" customers")
	}

	rating := math.Min(math.Max(m.AverageRating, 0), 5)
	total += rating * w.RatingMultiplier

	return int(math.Round(total)), hits
}

// Rank scores every active marketplace and returns the top N by score, then
// rating, both descending. Name breaks remaining ties so output is stable.
func Rank(w Weights, p Profile, items []*Marketplace) []Match {
	matches := make([]Match, 0, len(items))
	for _, m := range items {
		if m == nil || !m.Active {
			continue
		}
		score, hits := Score(w, p, m)
		reasons := append([]string{tier(w, score)}, hits...)
		if len(reasons) > maxReasons {
			reasons = reasons[:maxReasons]
		}
		matches = append(matches, Match{Marketplace: m, Score: score, Reasons: reasons})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Marketplace.AverageRating != b.Marketplace.AverageRating {
			return a.Marketplace.AverageRating > b.Marketplace.AverageRating
		}
		return a.Marketplace.Name < b.Marketplace.Name
	})

	if w.TopN > 0 && len(matches) > w.TopN {
		matches = matches[:w.TopN]
	}
	return matches
}

func tier(w Weights, score int) string {
	switch {
	case score >= w.ExcellentThreshold:
		return "Excellent match for your business"
	case score >= w.GoodThreshold:
		return "Good match for your business"
	default:
		return "Potential channel worth exploring"
	}
}

func containsExact(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// firstSubstring returns the first non-empty tag that appears, ignoring case,
// inside text.
func firstSubstring(tags []string, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(t)) {
			return t, true
		}
	}
	return "", false
}
