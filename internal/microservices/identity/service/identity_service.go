package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	"food-order/internal/common/ids"
	"food-order/internal/common/logger"
	"food-order/internal/common/validate"
	"food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/identity/repository"
)

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid_credentials", "Invalid email or password")
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "email_taken", "Email already registered")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user_not_found", "User not found")
)

const searchLimit = 20

type SignupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type AuthResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      models.Profile `json:"user"`
}

type IdentityServiceInterface interface {
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (models.Session, bool)
	Lookup(ctx context.Context, id string) (models.Profile, error)
	FindByEmail(ctx context.Context, email string) (models.Profile, error)
	Search(ctx context.Context, query, excludeID string) ([]models.Profile, error)
}

type IdentityService struct {
	accounts repository.AccountRepositoryInterface
	sessions repository.SessionRepositoryInterface
	tokens   *TokenIssuer
	pub      events.Publisher
	ttl      time.Duration
	now      func() time.Time
	lg       *logger.Logger
}

func NewIdentityService(repo *repository.Repository, tokens *TokenIssuer, ttl time.Duration, pub events.Publisher) *IdentityService {
	if pub == nil {
		pub = events.Discard{}
	}
	return &IdentityService{
		accounts: repo.AccountRepo,
		sessions: repo.SessionRepo,
		tokens:   tokens,
		pub:      pub,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		lg:       logger.New("identity"),
	}
}

func (s *IdentityService) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return AuthResult{}, err
	}

	if _, found, err := s.accounts.ByEmail(ctx, in.Email); err != nil {
		return AuthResult{}, err
	} else if found {
		return AuthResult{}, ErrEmailTaken
	}

	acc := models.Account{
		ID:        ids.New(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		CreatedAt: s.now(),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}
	logger.FromContext(ctx, s.lg).Info("account_created", map[string]any{"user_id": acc.ID})
	events.Emit(ctx, s.pub, s.lg, events.AccountSignedUp, map[string]string{
		"user_id": acc.ID, "name": acc.Name, "email": acc.Email,
	})

	return s.openSession(ctx, acc)
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	acc, found, err := s.accounts.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return AuthResult{}, err
	}
	// same failure whether the email or the password is wrong
	if !found || subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password)) != 1 {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.openSession(ctx, acc)
}

func (s *IdentityService) openSession(ctx context.Context, acc models.Account) (AuthResult, error) {
	now := s.now()
	rec := models.SessionRecord{
		ID:        ids.New(),
		AccountID: acc.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, rec); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Issue(rec)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, ExpiresAt: rec.ExpiresAt, User: acc.Profile()}, nil
}

// Logout ends the session behind token. Unknown or malformed tokens are ignored.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	sid, _, err := s.tokens.Parse(token, s.now())
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

// Resolve turns a bearer token into a session. Anything unusable, including
// storage failures, resolves to signed out.
func (s *IdentityService) Resolve(ctx context.Context, token string) (models.Session, bool) {
	if token == "" {
		return models.Session{}, false
	}
	now := s.now()
	sid, accountID, err := s.tokens.Parse(token, now)
	if err != nil {
		return models.Session{}, false
	}
	rec, found, err := s.sessions.Get(ctx, sid)
	if err != nil {
		logger.FromContext(ctx, s.lg).Error("session_lookup_failed", err, nil)
		return models.Session{}, false
	}
	if !found || rec.AccountID != accountID || !now.Before(rec.ExpiresAt) {
		return models.Session{}, false
	}
	acc, found, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		logger.FromContext(ctx, s.lg).Error("session_account_lookup_failed", err, nil)
		return models.Session{}, false
	}
	if !found {
		return models.Session{}, false
	}
	return models.Session{Profile: acc.Profile(), SessionID: sid}, true
}

func (s *IdentityService) Lookup(ctx context.Context, id string) (models.Profile, error) {
	acc, found, err := s.accounts.ByID(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}
	if !found {
		return models.Profile{}, apperr.NotFound("user")
	}
	return acc.Profile(), nil
}

func (s *IdentityService) FindByEmail(ctx context.Context, email string) (models.Profile, error) {
	acc, found, err := s.accounts.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return models.Profile{}, err
	}
	if !found {
		return models.Profile{}, ErrUserNotFound
	}
	return acc.Profile(), nil
}

func (s *IdentityService) Search(ctx context.Context, query, excludeID string) ([]models.Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Profile{}, nil
	}
	// one extra so excluding the caller still fills the page
	accs, err := s.accounts.SearchEmail(ctx, query, searchLimit+1)
	if err != nil {
		return nil, err
	}
	out := make([]models.Profile, 0, len(accs))
	for _, a := range accs {
		if a.ID == excludeID {
			continue
		}
		out = append(out, a.Profile())
		if len(out) == searchLimit {
			break
		}
	}
	return out, nil
}
