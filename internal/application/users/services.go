package users

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/auth"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/user"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
	"github.com/bryanwahyu/udyamsakhi/internal/validate"
)

type Service struct {
	Repo   domain.Repository
	Tokens *auth.Tokens
	Clock  application.Clock
}

type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	BusinessType string `json:"businessType"`
	State        string `json:"state"`
}

// Session is returned by register and login.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	const op = "users.Register"
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Email(email); err != nil {
		return nil, apperr.Validation(op, err.Error())
	}
	if err := validate.Password(in.Password); err != nil {
		return nil, apperr.Validation(op, err.Error())
	}
	name := validate.Sanitize(in.Name)
	if name == "" {
		return nil, apperr.Validation(op, "name is required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "hash password", err)
	}
	now := s.Clock.Now()
	u := &domain.User{
		Email:        email,
		Name:         name,
		BusinessType: validate.Sanitize(in.BusinessType),
		State:        validate.Sanitize(in.State),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("user registered", zap.String("user_id", u.ID))
	return s.session(op, u)
}

// Login checks credentials. Unknown email and wrong password look the same
// to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	const op = "users.Login"
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Unauthorized(op, "invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		logger.FromContext(ctx).Warn("login failed", zap.String("user_id", u.ID))
		return nil, apperr.Unauthorized(op, "invalid credentials")
	}
	return s.session(op, u)
}

func (s *Service) session(op string, u *domain.User) (*Session, error) {
	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, "issue token", err)
	}
	return &Session{Token: token, User: u}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.Repo.Get(ctx, userID)
}

// UpdateMe applies the non-nil profile fields.
func (s *Service) UpdateMe(ctx context.Context, userID string, p domain.Profile) (*domain.User, error) {
	const op = "users.UpdateMe"
	for _, f := range []*string{p.Name, p.Phone, p.BusinessType, p.State, p.Language, p.AvatarURL} {
		if f != nil {
			*f = validate.Sanitize(*f)
		}
	}
	if p.Name != nil && *p.Name == "" {
		return nil, apperr.Validation(op, "name cannot be empty")
	}
	if p.AvatarURL != nil && *p.AvatarURL != "" {
		if err := validate.URL(*p.AvatarURL); err != nil {
			return nil, apperr.Validation(op, err.Error())
		}
	}

	u, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Apply(p, s.Clock.Now())
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
