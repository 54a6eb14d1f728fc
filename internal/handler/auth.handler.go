package handler

import (
	"net/http"
	"time"

	"coreshop-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type loginResp struct {
	SessionID string             `json:"sessionId"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Type      string             `json:"type"`
	Roles     []string           `json:"roles"`
	User      domain.UserProfile `json:"user"`
}

func (h *Handler) Login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "invalid login request")
		return
	}

	sess, err := h.svc.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, sess.ID, maxAge, "/", "", h.opts.SecureCookie, true)
	c.JSON(http.StatusOK, loginResp{
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
		Type:      sess.User.Type,
		Roles:     sess.User.Roles,
		User:      sess.User.UserProfile,
	})
}

// Logout clears everything the session held: the stored token, any open
// checkout and the live ticket board.
func (h *Handler) Logout(c *gin.Context) {
	sess := session(c)
	if err := h.svc.Auth.Logout(c.Request.Context(), sess.ID); err != nil {
		respondError(c, err)
		return
	}
	h.svc.Checkout.Forget(sess.ID)
	h.svc.Support.Forget(sess.ID)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.SecureCookie, true)
	c.Status(http.StatusNoContent)
}

func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.svc.Auth.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) Products(c *gin.Context) {
	products, err := h.svc.Products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
