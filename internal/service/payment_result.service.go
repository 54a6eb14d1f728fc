package service

import (
	"context"
	"fmt"
	"net/url"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"
	"coreshop-storefront/internal/repo"

	"github.com/shopspring/decimal"
)

const (
	msgRedirectSuccess = "Your payment has been processed successfully!"
	msgRedirectFailure = "The payment was not authorized"
)

// PaymentResultService turns result page query parameters into a PaymentResult.
type PaymentResultService interface {
	Interpret(ctx context.Context, sessionKey string, params url.Values) (*domain.PaymentResult, error)
}

type paymentResultService struct {
	api      OrderAPI
	attempts repo.AttemptRepo
	checkout CheckoutService
}

func NewPaymentResultService(api OrderAPI, attempts repo.AttemptRepo, checkout CheckoutService) PaymentResultService {
	return &paymentResultService{api: api, attempts: attempts, checkout: checkout}
}

// Interpret reads the redirect. When the backend already processed the
// payment the result is built from the query alone; otherwise the legacy
// gateway fields are submitted to the payment callback endpoint.
func (s *paymentResultService) Interpret(ctx context.Context, sessionKey string, params url.Values) (*domain.PaymentResult, error) {
	cb, err := domain.ParseGatewayCallback(params)
	if err != nil {
		return nil, err
	}

	var (
		result    *domain.PaymentResult
		sessionID *string
	)
	switch v := cb.(type) {
	case domain.RedirectOutcome:
		result = resultFromRedirect(v)
		sessionID = v.SessionID
	case domain.LegacyCallback:
		sessionID = v.SessionID
		result, err = s.api.PaymentCallback(ctx, v)
		if err == nil && result == nil {
			err = errNoPaymentResult
		}
		if err != nil {
			logging.FromCtx(ctx).Error("payment callback failed", "order_id", v.OrderID, "err", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrPaymentProcessing, err)
		}
	default:
		return nil, fmt.Errorf("unsupported gateway callback %T", cb)
	}

	if s.checkout != nil && sessionKey != "" {
		s.checkout.Reset(sessionKey)
	}
	s.resolveAttempt(ctx, sessionKey, result, sessionID)
	return result, nil
}

// resolveAttempt closes the caller's own attempt. Without a session there is
// no owner to match, so the audit trail is left to the expiry worker.
func (s *paymentResultService) resolveAttempt(ctx context.Context, sessionKey string, result *domain.PaymentResult, sessionID *string) {
	if s.attempts == nil || sessionKey == "" {
		return
	}
	var err error
	if sessionID != nil {
		_, err = s.attempts.Resolve(ctx, sessionKey, *sessionID, result.PaymentSuccessful, result.Message)
	} else {
		_, err = s.attempts.ResolveLatestForOrder(ctx, sessionKey, result.OrderID, result.PaymentSuccessful, result.Message)
	}
	if err != nil {
		logging.FromCtx(ctx).Error("resolve payment attempt", "order_id", result.OrderID, "err", err)
	}
}

// resultFromRedirect accepts either spelling of success: success=true,
// status=completed or status=PAID, compared exactly.
func resultFromRedirect(r domain.RedirectOutcome) *domain.PaymentResult {
	successful := value(r.Success) == "true" ||
		value(r.Status) == "completed" ||
		value(r.Status) == "PAID"

	message := msgRedirectFailure
	switch {
	case successful:
		message = msgRedirectSuccess
	case r.Error != nil:
		message = decodeMessage(*r.Error)
	}

	return &domain.PaymentResult{
		OrderID:           r.OrderID,
		PreviousStatus:    "",
		NewStatus:         value(r.Status),
		PaymentSuccessful: successful,
		Message:           message,
		Status:            nonEmpty(r.Status),
		AuthorizationCode: r.AuthorizationCode,
		CardBrand:         r.CardBrand,
		CardNumber:        r.CardNumber,
		Amount:            parseAmount(r.Amount),
		TransactionCode:   r.TransactionCode,
		ActionCode:        r.ActionCode,
		TraceNumber:       r.TraceNumber,
	}
}

// decodeMessage undoes the extra escaping the backend applies to error text.
func decodeMessage(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func parseAmount(p *string) *decimal.Decimal {
	if p == nil {
		return nil
	}
	d, err := decimal.NewFromString(*p)
	if err != nil {
		return nil
	}
	return &d
}
