// Package repository implements the domain repository ports on top of
// docstore collections, so any backend (mongo, mysql, postgres, sqlite)
// serves every entity.
package repository

import (
	"errors"

	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/docstore"
)

const (
	BusinessPlans      = "business_plans"
	MarketData         = "market_data"
	ComplianceItems    = "compliance_items"
	ComplianceProgress = "compliance_progress"
	Marketplaces       = "marketplaces"
	Users              = "users"
	Courses            = "courses"
	Mentors            = "mentors"
	CourseProgress     = "course_progress"
	FundingSchemes     = "funding_schemes"
)

// progressKind is the kind of per-user progress documents; the parent is
// the item or course.
const progressKind = "progress"

// Specs lists every collection with its key constraint.
var Specs = []docstore.Spec{
	{Name: BusinessPlans},
	{Name: MarketData, UniqueKey: true},
	{Name: ComplianceItems},
	{Name: ComplianceProgress, UniqueKey: true},
	{Name: Marketplaces},
	{Name: Users, UniqueKey: true},
	{Name: Courses},
	{Name: Mentors},
	{Name: CourseProgress, UniqueKey: true},
	{Name: FundingSchemes},
}

// storeErr maps docstore sentinels to apperr kinds.
func storeErr(op, what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return apperr.NotFound(op, what+" not found")
	case errors.Is(err, docstore.ErrDuplicate):
		return apperr.Conflict(op, what+" already exists")
	default:
		return apperr.Wrap(apperr.KindInternal, op, "store error", err)
	}
}

// decodeAll decodes every document body into a fresh T and lets fill copy
// document metadata onto it.
func decodeAll[T any](op string, docs []docstore.Document, fill func(*T, docstore.Document)) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, d := range docs {
		v := new(T)
		if err := docstore.Decode(d, v); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, op, "store error", err)
		}
		if fill != nil {
			fill(v, d)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeOne[T any](op string, d docstore.Document, fill func(*T, docstore.Document)) (*T, error) {
	all, err := decodeAll(op, []docstore.Document{d}, fill)
	if err != nil {
		return nil, err
	}
	return all[0], nil
}

func encode(op string, v any) ([]byte, error) {
	b, err := docstore.Encode(v)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "store error", err)
	}
	return b, nil
}
