package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	"food-order/internal/microservices/identity/repository"
)

func newTestService() *IdentityService {
	return NewIdentityService(repository.NewMemory(), NewTokenIssuer("test-secret"), time.Hour, nil)
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	signed, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, signed.Token)
	assert.Equal(t, "Ann", signed.User.Name)

	logged, err := s.Login(ctx, "ann@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, signed.User, logged.User)

	sess, ok := s.Resolve(ctx, logged.Token)
	require.True(t, ok)
	assert.Equal(t, signed.User.ID, sess.ID)
	assert.Equal(t, "ann@x.com", sess.Email)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	_, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Signup(ctx, SignupInput{Name: "Other", Email: "ann@x.com", Password: "another"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestSignupValidation(t *testing.T) {
	s := newTestService()
	tests := []struct {
		name  string
		in    SignupInput
		field string
	}{
		{"missing name", SignupInput{Email: "a@x.com", Password: "secret1"}, "name"},
		{"bad email", SignupInput{Name: "A", Email: "not-an-email", Password: "secret1"}, "email"},
		{"short password", SignupInput{Name: "A", Email: "a@x.com", Password: "12345"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(context.Background(), tt.in)
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Contains(t, e.Fields, tt.field)
		})
	}
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	_, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "ann@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	res, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, res.Token))
	_, ok := s.Resolve(ctx, res.Token)
	assert.False(t, ok)

	// second logout and garbage tokens are no-ops
	assert.NoError(t, s.Logout(ctx, res.Token))
	assert.NoError(t, s.Logout(ctx, "garbage"))
}

func TestResolveRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	res, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, ok := s.Resolve(ctx, "")
	assert.False(t, ok)
	_, ok = s.Resolve(ctx, "not.a.jwt")
	assert.False(t, ok)

	other := NewIdentityService(repository.NewMemory(), NewTokenIssuer("other-secret"), time.Hour, nil)
	_, ok = other.Resolve(ctx, res.Token)
	assert.False(t, ok)

	s.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	_, ok = s.Resolve(ctx, res.Token)
	assert.False(t, ok, "expired session")
}

func TestSearchExcludesCaller(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	ann, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@food.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.Signup(ctx, SignupInput{Name: "Bob", Email: "bob@FOOD.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.Signup(ctx, SignupInput{Name: "Cy", Email: "cy@other.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := s.Search(ctx, "food", ann.User.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)

	got, err = s.Search(ctx, "  ", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLookupAndFindByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	res, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	p, err := s.Lookup(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)

	_, err = s.Lookup(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	p, err = s.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, p.ID)

	_, err = s.FindByEmail(ctx, "bob@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignupAnnouncesAccount(t *testing.T) {
	rec := &events.Recorder{}
	s := NewIdentityService(repository.NewMemory(), NewTokenIssuer("test-secret"), time.Hour, rec)

	res, err := s.Signup(context.Background(), SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, []string{events.AccountSignedUp}, rec.Types())

	var payload map[string]string
	require.NoError(t, rec.Events()[0].Decode(&payload))
	assert.Equal(t, res.User.ID, payload["user_id"])
	assert.Equal(t, "ann@x.com", payload["email"])
	assert.NotContains(t, payload, "password")

	_, err = s.Login(context.Background(), "ann@x.com", "secret1")
	require.NoError(t, err)
	assert.Len(t, rec.Events(), 1)
}
