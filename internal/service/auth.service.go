package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	Profile(ctx context.Context) (*domain.UserProfile, error)
}

type authService struct {
	api   AuthAPI
	store SessionStore
	now   func() time.Time
}

func NewAuthService(api AuthAPI, store SessionStore) AuthService {
	return &authService{api: api, store: store, now: time.Now}
}

// Login keeps wrong credentials apart from every other failure so the page
// can tell them apart.
func (s *authService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	login, err := s.api.Login(ctx, creds)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrTransport):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     login.Token,
		User:      *login,
		CreatedAt: s.now(),
		ExpiresAt: s.store.Expiry(login.Token),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	logging.FromCtx(ctx).Info("user logged in", "user_id", login.ID, "session_expires", sess.ExpiresAt)
	return sess, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *authService) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.store.Get(ctx, sessionID)
}

func (s *authService) Profile(ctx context.Context) (*domain.UserProfile, error) {
	return s.api.Profile(ctx)
}
