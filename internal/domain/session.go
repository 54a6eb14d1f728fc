package domain

import (
	"context"
	"time"
)

type UserProfile struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono"`
	Direccion    string `json:"direccion"`
	Ciudad       string `json:"ciudad"`
	Pais         string `json:"pais"`
	ProfilePhoto string `json:"profilePhoto"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	Type  string   `json:"type"`
	Roles []string `json:"roles"`
	UserProfile
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Session replaces the browser's local storage entry: the API token and the
// user blob returned by login.
type Session struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	User      LoginResponse `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
