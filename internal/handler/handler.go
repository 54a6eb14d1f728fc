package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/handler/middleware"
	"coreshop-storefront/internal/infrastructure/api"
	"coreshop-storefront/internal/logging"
	"coreshop-storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth      service.AuthService
	Products  service.ProductService
	Cart      service.CartService
	Orders    service.OrderService
	Checkout  service.CheckoutService
	Results   service.PaymentResultService
	Warehouse service.WarehouseService
	Support   service.SupportService
}

// HealthReporter is satisfied by database.Service.
type HealthReporter interface {
	Health(ctx context.Context) map[string]string
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	CookieName   string
	SecureCookie bool
	DB           HealthReporter
	Cache        Pinger
}

type Handler struct {
	svc  Services
	opts Options
}

func New(svc Services, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = "storefront_session"
	}
	return &Handler{svc: svc, opts: opts}
}

func (h *Handler) Healthz(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{}

	if h.opts.DB != nil {
		db := h.opts.DB.Health(c.Request.Context())
		if db["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		body["db"] = db
	}
	if h.opts.Cache != nil {
		if err := h.opts.Cache.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["redis"] = gin.H{"status": "down", "error": err.Error()}
		} else {
			body["redis"] = gin.H{"status": "up"}
		}
	}
	body["ok"] = status == http.StatusOK
	c.JSON(status, body)
}

// session is only called behind RequireSession.
func session(c *gin.Context) *domain.Session {
	sess, _ := middleware.CurrentSession(c)
	return sess
}

func sessionKey(c *gin.Context) string {
	if sess, ok := middleware.CurrentSession(c); ok {
		return sess.ID
	}
	return ""
}

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation
	}
	return id, nil
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "bad_request"})
}

// respondError maps service errors to HTTP answers.
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		logging.From(c).Error("request failed", "err", err, "status", status)
	}
	c.JSON(status, gin.H{"error": messageFor(err), "code": code})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrOrderNotPayable):
		return http.StatusConflict, "not_payable"
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict, "checkout_in_progress"
	case errors.Is(err, domain.ErrNoOpenCheckout):
		return http.StatusConflict, "no_open_checkout"
	case errors.Is(err, domain.ErrPaymentStart):
		return http.StatusBadGateway, "payment_start_failed"
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusBadGateway, "authorization_failed"
	case errors.Is(err, domain.ErrPaymentProcessing):
		return http.StatusBadGateway, "payment_processing_failed"
	case errors.Is(err, domain.ErrLoginFailed):
		return http.StatusBadGateway, "login_failed"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "upstream_unavailable"
	}
	switch s := api.StatusOf(err); {
	case s == http.StatusUnauthorized, s == http.StatusForbidden, s == http.StatusNotFound:
		return s, "upstream_rejected"
	case s >= 400 && s < 500:
		return http.StatusBadRequest, "upstream_rejected"
	case s >= 500:
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusInternalServerError, "internal"
}

// messageFor keeps wrapped upstream details out of the answer for the
// user-facing sentinels.
func messageFor(err error) string {
	for _, sentinel := range []error{
		domain.ErrPaymentStart,
		domain.ErrAuthorization,
		domain.ErrPaymentProcessing,
		domain.ErrLoginFailed,
		domain.ErrTransport,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
