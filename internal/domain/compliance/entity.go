package compliance

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// MatchAll in BusinessTypes or States matches every value.
const MatchAll = "all"

const (
	SourceSeed = "seed"
	SourceAI   = "ai"
)

type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Item is a shared requirement record, matched to users by attributes.
type Item struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Priority      Priority  `json:"priority"`
	BusinessTypes []string  `json:"businessTypes"`
	States        []string  `json:"states"`
	Steps         []string  `json:"steps"`
	Fees          string    `json:"fees"`
	Timeline      string    `json:"timeline"`
	Links         []Link    `json:"links"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AppliesTo reports whether the item is relevant for a business type and
// state. Empty inputs only match items marked "all".
func (i *Item) AppliesTo(businessType, state string) bool {
	return matches(i.BusinessTypes, businessType) && matches(i.States, state)
}

func matches(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if strings.EqualFold(s, MatchAll) || (v != "" && strings.EqualFold(s, v)) {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q (allowed: pending, in_progress, completed)", s)
}

// Progress is one user's state on one item.
type Progress struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ItemID         string    `json:"itemId"`
	Status         Status    `json:"status"`
	CompletedSteps []int     `json:"completedSteps"`
	Notes          string    `json:"notes,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ValidateSteps checks every index is within the item's steps and returns
// them sorted without duplicates.
func (i *Item) ValidateSteps(steps []int) ([]int, error) {
	seen := make(map[int]bool, len(steps))
	out := make([]int, 0, len(steps))
	for _, s := range steps {
		if s < 0 || s >= len(i.Steps) {
			return nil, fmt.Errorf("step %d out of range (item has %d steps)", s, len(i.Steps))
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out, nil
}

// ItemWithProgress is an item joined with the caller's progress.
type ItemWithProgress struct {
	*Item
	Progress *Progress `json:"progress"`
}

// SortItems orders by priority (high first) then title.
func SortItems(items []ItemWithProgress) {
	sort.SliceStable(items, func(a, b int) bool {
		ra, rb := items[a].Priority.rank(), items[b].Priority.rank()
		if ra != rb {
			return ra < rb
		}
		return strings.ToLower(items[a].Title) < strings.ToLower(items[b].Title)
	})
}

// ParsePriority normalises free text from generated items, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	}
	return PriorityMedium
}
