package repository

import (
	"context"
	"strings"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/learning"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

type CourseRepository struct {
	cat catalog[learning.Course]
}

func NewCourseRepository(db docstore.Database) *CourseRepository {
	return &CourseRepository{cat: catalog[learning.Course]{
		col:  db.Collection(Courses),
		what: "course",
		id:   func(c *learning.Course) *string { return &c.ID },
		kind: func(c *learning.Course) string { return strings.ToLower(c.Category) },
	}}
}

// List filters by category in the store and by level in memory.
func (r *CourseRepository) List(ctx context.Context, category, level string) ([]*learning.Course, error) {
	all, err := r.cat.list(ctx, docstore.Filter{Kind: strings.ToLower(category)})
	if err != nil || level == "" {
		return all, err
	}
	out := all[:0]
	for _, c := range all {
		if strings.EqualFold(c.Level, level) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CourseRepository) Get(ctx context.Context, id string) (*learning.Course, error) {
	return r.cat.get(ctx, id)
}

func (r *CourseRepository) Count(ctx context.Context) (int, error) { return r.cat.count(ctx) }

func (r *CourseRepository) InsertMany(ctx context.Context, items []*learning.Course) error {
	return r.cat.insertMany(ctx, items)
}

type MentorRepository struct {
	cat catalog[learning.Mentor]
}

func NewMentorRepository(db docstore.Database) *MentorRepository {
	return &MentorRepository{cat: catalog[learning.Mentor]{
		col:  db.Collection(Mentors),
		what: "mentor",
		id:   func(m *learning.Mentor) *string { return &m.ID },
	}}
}

func (r *MentorRepository) List(ctx context.Context) ([]*learning.Mentor, error) {
	return r.cat.list(ctx, docstore.Filter{})
}

func (r *MentorRepository) Count(ctx context.Context) (int, error) { return r.cat.count(ctx) }

func (r *MentorRepository) InsertMany(ctx context.Context, items []*learning.Mentor) error {
	return r.cat.insertMany(ctx, items)
}

type CourseProgressRepository struct {
	col docstore.Collection
}

func NewCourseProgressRepository(db docstore.Database) *CourseProgressRepository {
	return &CourseProgressRepository{col: db.Collection(CourseProgress)}
}

func fillCourseProgress(p *learning.Progress, d docstore.Document) {
	p.ID = d.ID
	p.UserID = d.OwnerID
	p.CourseID = d.ParentID
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
}

func (r *CourseProgressRepository) Get(ctx context.Context, userID, courseID string) (*learning.Progress, error) {
	const op = "courseProgress.Get"
	docs, err := r.col.Find(ctx, docstore.Filter{OwnerID: userID, ParentID: courseID, Kind: progressKind, Limit: 1})
	if err != nil {
		return nil, storeErr(op, "progress", err)
	}
	if len(docs) == 0 {
		return nil, storeErr(op, "progress", docstore.ErrNotFound)
	}
	return decodeOne(op, docs[0], fillCourseProgress)
}

func (r *CourseProgressRepository) Upsert(ctx context.Context, p *learning.Progress) (*learning.Progress, error) {
	const op = "courseProgress.Upsert"
	body, err := encode(op, p)
	if err != nil {
		return nil, err
	}
	d, err := r.col.UpsertByKey(ctx, docstore.Document{OwnerID: p.UserID, ParentID: p.CourseID, Kind: progressKind, Body: body})
	if err != nil {
		return nil, storeErr(op, "progress", err)
	}
	return decodeOne(op, d, fillCourseProgress)
}

func (r *CourseProgressRepository) ListByUser(ctx context.Context, userID string) ([]*learning.Progress, error) {
	const op = "courseProgress.ListByUser"
	docs, err := r.col.Find(ctx, docstore.Filter{OwnerID: userID})
	if err != nil {
		return nil, storeErr(op, "progress", err)
	}
	return decodeAll(op, docs, fillCourseProgress)
}
