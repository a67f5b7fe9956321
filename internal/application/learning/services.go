package learning

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/learning"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

type Service struct {
	Courses  domain.CourseRepository
	Mentors  domain.MentorRepository
	Progress domain.ProgressRepository
	Clock    application.Clock

	courseMu sync.Mutex
	mentorMu sync.Mutex
}

func (s *Service) SeedCourses(ctx context.Context) (int, error) {
	return application.SeedIfEmpty(ctx, &s.courseMu, s.Courses, domain.DefaultCourses)
}

func (s *Service) SeedMentors(ctx context.Context) (int, error) {
	return application.SeedIfEmpty(ctx, &s.mentorMu, s.Mentors, domain.DefaultMentors)
}

func (s *Service) ListCourses(ctx context.Context, category, level string) ([]*domain.Course, error) {
	if _, err := s.SeedCourses(ctx); err != nil {
		return nil, err
	}
	courses, err := s.Courses.List(ctx, category, level)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].Title < courses[j].Title })
	return courses, nil
}

func (s *Service) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	return s.Courses.Get(ctx, id)
}

// ListMentors filters by expertise and industry, best rated first.
func (s *Service) ListMentors(ctx context.Context, expertise, industry string) ([]*domain.Mentor, error) {
	if _, err := s.SeedMentors(ctx); err != nil {
		return nil, err
	}
	all, err := s.Mentors.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Mentor, 0, len(all))
	for _, m := range all {
		if m.Matches(expertise, industry) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Enroll creates the caller's progress for a course if it does not exist yet.
func (s *Service) Enroll(ctx context.Context, userID, courseID string) (*domain.Progress, error) {
	c, err := s.Courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	p, err := s.Progress.Get(ctx, userID, c.ID)
	if err == nil {
		return p, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	now := s.Clock.Now()
	p, err = s.Progress.Upsert(ctx, &domain.Progress{
		UserID:           userID,
		CourseID:         c.ID,
		CompletedLessons: []string{},
		EnrolledAt:       now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("course enrolled", zap.String("course_id", c.ID))
	return p, nil
}

// CompleteLesson marks one lesson done. Completing it again is a no-op.
func (s *Service) CompleteLesson(ctx context.Context, userID, courseID, lessonID string) (*domain.Progress, error) {
	const op = "learning.CompleteLesson"
	c, err := s.Courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !c.HasLesson(lessonID) {
		return nil, apperr.NotFound(op, "lesson not found in course")
	}
	p, err := s.Progress.Get(ctx, userID, c.ID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Validation(op, "enroll in the course first")
	}
	if err != nil {
		return nil, err
	}

	if !p.CompleteLesson(c, lessonID, s.Clock.Now()) {
		return p, nil
	}
	p, err = s.Progress.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("lesson completed",
		zap.String("course_id", c.ID),
		zap.String("lesson_id", lessonID),
		zap.Int("percent", p.Percent),
	)
	return p, nil
}

func (s *Service) ListProgress(ctx context.Context, userID string) ([]*domain.Progress, error) {
	return s.Progress.ListByUser(ctx, userID)
}
