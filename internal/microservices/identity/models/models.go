package models

import (
	"context"
	"time"

	"food-order/internal/common/apperr"
)

// Account is the stored registration record. Password is kept as entered.
type Account struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

func (a Account) Profile() Profile {
	return Profile{ID: a.ID, Name: a.Name, Email: a.Email}
}

// Profile is the public part of an account.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionRecord is what the session store keeps per sign-in.
type SessionRecord struct {
	ID        string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Session is the signed-in user as seen by the rest of the system.
type Session struct {
	Profile
	SessionID string `json:"-"`
}

var ErrNotSignedIn = apperr.New(apperr.KindUnauthorized, "not_signed_in", "Sign in required")

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// RequireSession returns the caller's session or ErrNotSignedIn.
func RequireSession(ctx context.Context) (Session, error) {
	s, ok := SessionFrom(ctx)
	if !ok {
		return Session{}, ErrNotSignedIn
	}
	return s, nil
}
