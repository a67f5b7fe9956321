package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/udyamsakhi/internal/application"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/auth"
	domain "github.com/bryanwahyu/udyamsakhi/internal/domain/user"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/repository"
	"github.com/bryanwahyu/udyamsakhi/internal/infra/db/sqlite/sqlitetest"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Repo:   repository.NewUserRepository(sqlitetest.Open(t)),
		Tokens: auth.NewTokens("test-secret", time.Hour),
		Clock:  application.FixedClock{T: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
}

func register(t *testing.T, svc *Service) *Session {
	t.Helper()
	s, err := svc.Register(context.Background(), RegisterInput{
		Email:        " Anita@Example.in ",
		Password:     "longenough",
		Name:         "Anita",
		BusinessType: "handicrafts",
		State:        "Rajasthan",
	})
	require.NoError(t, err)
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	s := register(t, svc)

	assert.Equal(t, "anita@example.in", s.User.Email)
	assert.NotEmpty(t, s.Token)
	claims, err := svc.Tokens.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, claims.UserID)

	logged, err := svc.Login(context.Background(), "ANITA@example.in", "longenough")
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, logged.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	cases := map[string]RegisterInput{
		"bad email":      {Email: "nope", Password: "longenough", Name: "A"},
		"short password": {Email: "a@b.in", Password: "short", Name: "A"},
		"missing name":   {Email: "a@b.in", Password: "longenough", Name: "  "},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), in)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "anita@example.in", Password: "different1", Name: "Other"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newService(t)
	register(t, svc)

	for _, c := range []struct{ email, password string }{
		{"anita@example.in", "wrongpassword"},
		{"nobody@example.in", "longenough"},
	} {
		_, err := svc.Login(context.Background(), c.email, c.password)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.Equal(t, "invalid credentials", apperr.Message(err))
	}
}

func TestUpdateMe(t *testing.T) {
	svc := newService(t)
	s := register(t, svc)
	ctx := context.Background()

	phone := "+91 98765 43210"
	lang := "hi"
	u, err := svc.UpdateMe(ctx, s.User.ID, domain.Profile{Phone: &phone, Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, "Anita", u.Name)
	assert.Equal(t, phone, u.Phone)

	me, err := svc.Me(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", me.Language)
	assert.Equal(t, "Rajasthan", me.State)

	empty := " "
	_, err = svc.UpdateMe(ctx, s.User.ID, domain.Profile{Name: &empty})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	for _, bad := range []string{"http://localhost/avatar.png", "http://172.20.0.5/a.png", "http://[fd12::1]/a.png"} {
		_, err = svc.UpdateMe(ctx, s.User.ID, domain.Profile{AvatarURL: &bad})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), bad)
	}

	// password survives a profile update
	_, err = svc.Login(ctx, "anita@example.in", "longenough")
	assert.NoError(t, err)
}
