package learning

import (
	"context"
	"strings"
	"time"
)

type Lesson struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	VideoURL        string `json:"videoUrl,omitempty"`
}

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"` // beginner | intermediate | advanced
	Language    string    `json:"language"`
	Instructor  string    `json:"instructor"`
	Lessons     []Lesson  `json:"lessons"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Course) HasLesson(id string) bool {
	for _, l := range c.Lessons {
		if l.ID == id {
			return true
		}
	}
	return false
}

type Mentor struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Expertise       []string  `json:"expertise"`
	Industries      []string  `json:"industries"`
	Languages       []string  `json:"languages"`
	ExperienceYears int       `json:"experienceYears"`
	Rating          float64   `json:"rating"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Matches filters on expertise and industry, case-insensitively. Empty
// filters match everything.
func (m *Mentor) Matches(expertise, industry string) bool {
	return anyFold(m.Expertise, expertise) && anyFold(m.Industries, industry)
}

func anyFold(list []string, v string) bool {
	if v == "" {
		return true
	}
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// Progress is one user's enrolment in one course.
type Progress struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	CourseID         string     `json:"courseId"`
	CompletedLessons []string   `json:"completedLessons"`
	Percent          int        `json:"percent"`
	Completed        bool       `json:"completed"`
	EnrolledAt       time.Time  `json:"enrolledAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CompleteLesson adds lessonID once and recomputes the percentage. It reports
// whether anything changed.
func (p *Progress) CompleteLesson(c *Course, lessonID string, at time.Time) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return false
		}
	}
	p.CompletedLessons = append(p.CompletedLessons, lessonID)
	p.recompute(c, at)
	return true
}

func (p *Progress) recompute(c *Course, at time.Time) {
	p.UpdatedAt = at
	if len(c.Lessons) == 0 {
		p.Percent = 0
		return
	}
	done := 0
	for _, l := range c.Lessons {
		for _, id := range p.CompletedLessons {
			if id == l.ID {
				done++
				break
			}
		}
	}
	// floor, so 100 means every lesson is done
	p.Percent = done * 100 / len(c.Lessons)
	if done == len(c.Lessons) && !p.Completed {
		p.Completed = true
		t := at
		p.CompletedAt = &t
	}
}

type CourseRepository interface {
	List(ctx context.Context, category, level string) ([]*Course, error)
	Get(ctx context.Context, id string) (*Course, error)
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, items []*Course) error
}

type MentorRepository interface {
	List(ctx context.Context) ([]*Mentor, error)
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, items []*Mentor) error
}

type ProgressRepository interface {
	Get(ctx context.Context, userID, courseID string) (*Progress, error)
	// Upsert creates or replaces the progress for (UserID, CourseID).
	Upsert(ctx context.Context, p *Progress) (*Progress, error)
	ListByUser(ctx context.Context, userID string) ([]*Progress, error)
}
