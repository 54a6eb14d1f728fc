package middleware

import (
	"context"
	"errors"
	"net/http"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"

	"github.com/gin-gonic/gin"
)

const (
	HeaderSessionID = "X-Session-ID"

	sessionCtxKey = "session"
)

type SessionLoader interface {
	Session(ctx context.Context, id string) (*domain.Session, error)
}

// SessionID reads the session id from the cookie, then the header.
func SessionID(c *gin.Context, cookieName string) string {
	if id, err := c.Cookie(cookieName); err == nil && id != "" {
		return id
	}
	return c.GetHeader(HeaderSessionID)
}

// RequireSession rejects requests without a live session.
func RequireSession(loader SessionLoader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := loader.Session(c.Request.Context(), SessionID(c, cookieName))
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again", "code": "unauthorized"})
				return
			}
			logging.From(c).Error("load session", "err", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable", "code": "unavailable"})
			return
		}
		attach(c, sess)
		c.Next()
	}
}

// OptionalSession attaches the session when there is one and never rejects.
// The payment result page is reached by a redirect that may not carry it.
func OptionalSession(loader SessionLoader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := SessionID(c, cookieName); id != "" {
			if sess, err := loader.Session(c.Request.Context(), id); err == nil {
				attach(c, sess)
			}
		}
		c.Next()
	}
}

func attach(c *gin.Context, sess *domain.Session) {
	c.Set(sessionCtxKey, sess)
	c.Request = c.Request.WithContext(domain.WithSession(c.Request.Context(), sess))
	logging.With(c, logging.From(c).With("session_id", sess.ID, "user_id", sess.User.ID))
}

// CurrentSession returns the session attached by the session middleware.
func CurrentSession(c *gin.Context) (*domain.Session, bool) {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*domain.Session)
	return sess, ok && sess != nil
}
