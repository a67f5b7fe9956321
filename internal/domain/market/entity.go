package market

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReportType is the cached generation kind of a MarketData document.
type ReportType string

const (
	ReportAnalysis        ReportType = "analysis"
	ReportRecommendations ReportType = "recommendations"
	ReportStrategies      ReportType = "strategies"
)

var ReportTypes = []ReportType{ReportAnalysis, ReportRecommendations, ReportStrategies}

func ParseReportType(s string) (ReportType, error) {
	for _, t := range ReportTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid report type %q (allowed: analysis, recommendations, strategies)", s)
}

// Data is the single cached report for a (user, plan, type) triple. Payload
// holds the normalized object verbatim.
type Data struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	PlanID    string          `json:"planId"`
	TabType   ReportType      `json:"tabType"`
	Payload   json.RawMessage `json:"data"`
	Revision  int64           `json:"revision"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
