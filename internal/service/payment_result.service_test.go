package service

import (
	"context"
	"net/url"
	"testing"

	"coreshop-storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret_StatusCompleted(t *testing.T) {
	api, attempts := &mockAPI{}, &mockAttemptRepo{}
	svc := NewPaymentResultService(api, attempts, nil)

	result, err := svc.Interpret(context.Background(), "sess", url.Values{"orderId": {"5"}, "status": {"completed"}})
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.OrderID)
	assert.True(t, result.PaymentSuccessful)
	assert.Equal(t, "completed", result.NewStatus)
	assert.Empty(t, result.PreviousStatus)
	assert.Empty(t, api.legacy, "no network call on the redirect path")
	require.Len(t, attempts.resolved, 1)
	assert.Equal(t, int64(5), attempts.resolved[0].orderID)
	assert.Equal(t, "sess", attempts.resolved[0].sessionKey)
}

func TestInterpret_WithoutSessionLeavesAttempts(t *testing.T) {
	attempts := &mockAttemptRepo{}
	svc := NewPaymentResultService(&mockAPI{}, attempts, nil)

	result, err := svc.Interpret(context.Background(), "", url.Values{"orderId": {"5"}, "success": {"false"}})
	require.NoError(t, err)
	assert.False(t, result.PaymentSuccessful)

	_, err = svc.Interpret(context.Background(), "", url.Values{"orderId": {"5"}, "sessionId": {"1-abc"}, "status": {"completed"}})
	require.NoError(t, err)
	assert.Empty(t, attempts.resolved, "anonymous result pages resolve nothing")
}

func TestInterpret_SuccessFalseWithError(t *testing.T) {
	svc := NewPaymentResultService(&mockAPI{}, nil, nil)

	result, err := svc.Interpret(context.Background(), "sess", url.Values{
		"orderId": {"5"}, "success": {"false"}, "error": {"declined"},
	})
	require.NoError(t, err)
	assert.False(t, result.PaymentSuccessful)
	assert.Equal(t, "declined", result.Message)
	assert.Nil(t, result.Status)
	assert.Nil(t, result.AuthorizationCode)
	assert.Nil(t, result.Amount)
}

func TestInterpret_SuccessSpellings(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   bool
	}{
		{"success true", url.Values{"success": {"true"}}, true},
		{"status PAID", url.Values{"status": {"PAID"}}, true},
		{"status paid is not a match", url.Values{"status": {"paid"}}, false},
		{"status Completed is not a match", url.Values{"status": {"Completed"}}, false},
		{"empty status", url.Values{"status": {""}}, false},
		{"success false but status completed", url.Values{"success": {"false"}, "status": {"completed"}}, true},
	}
	svc := NewPaymentResultService(&mockAPI{}, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Set("orderId", "9")
			result, err := svc.Interpret(context.Background(), "", tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.PaymentSuccessful)
		})
	}
}

func TestInterpret_RedirectFields(t *testing.T) {
	svc := NewPaymentResultService(&mockAPI{}, nil, nil)

	result, err := svc.Interpret(context.Background(), "", url.Values{
		"orderId":           {"5"},
		"success":           {"true"},
		"authorizationCode": {"A1"},
		"cardBrand":         {"visa"},
		"cardNumber":        {"4111****1111"},
		"amount":            {"149.90"},
		"transactionCode":   {"T9"},
		"actionCode":        {"000"},
		"traceNumber":       {"77"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Your payment has been processed successfully!", result.Message)
	assert.Equal(t, "A1", *result.AuthorizationCode)
	assert.Equal(t, "Visa", result.CardBrandLabel())
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("149.9")))
	assert.Equal(t, "000", *result.ActionCode)
	assert.Equal(t, "77", *result.TraceNumber)
}

func TestInterpret_ErrorIsDecodedOnce(t *testing.T) {
	svc := NewPaymentResultService(&mockAPI{}, nil, nil)

	result, err := svc.Interpret(context.Background(), "", url.Values{
		"orderId": {"5"}, "success": {"false"}, "error": {"Tarjeta%20rechazada"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta rechazada", result.Message)

	result, err = svc.Interpret(context.Background(), "", url.Values{
		"orderId": {"5"}, "success": {"false"}, "error": {"100% bad"},
	})
	require.NoError(t, err)
	assert.Equal(t, "100% bad", result.Message)
}

func TestInterpret_MissingOrderID(t *testing.T) {
	api := &mockAPI{}
	_, err := NewPaymentResultService(api, nil, nil).Interpret(context.Background(), "", url.Values{"transactionToken": {"t"}})
	assert.ErrorIs(t, err, domain.ErrMissingOrderID)
	assert.Empty(t, api.legacy)
}

func TestInterpret_LegacyPath(t *testing.T) {
	api := &mockAPI{legacyResult: &domain.PaymentResult{OrderID: 42, NewStatus: "completed", PaymentSuccessful: true, Message: "ok"}}
	attempts := &mockAttemptRepo{}
	svc := NewPaymentResultService(api, attempts, nil)

	result, err := svc.Interpret(context.Background(), "sess", url.Values{
		"orderId": {"42"}, "sessionId": {"1-abc"}, "transactionToken": {"tok"},
	})
	require.NoError(t, err)
	assert.True(t, result.PaymentSuccessful)

	require.Len(t, api.legacy, 1)
	assert.Equal(t, "42", api.legacy[0].PurchaseNumber)
	assert.Equal(t, "tok", *api.legacy[0].TransactionToken)
	require.Len(t, attempts.resolved, 1)
	assert.Equal(t, "1-abc", attempts.resolved[0].checkoutSessionID)
	assert.Equal(t, "sess", attempts.resolved[0].sessionKey)
}

func TestInterpret_LegacyAnswerWithoutResult(t *testing.T) {
	attempts := &mockAttemptRepo{}
	svc := NewPaymentResultService(&mockAPI{}, attempts, nil)

	result, err := svc.Interpret(context.Background(), "sess", url.Values{"orderId": {"42"}, "transactionToken": {"tok"}})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPaymentProcessing)
	assert.Empty(t, attempts.resolved)
}

func TestInterpret_LegacyTransportFailure(t *testing.T) {
	api := &mockAPI{legacyErr: domain.ErrTransport}
	_, err := NewPaymentResultService(api, nil, nil).Interpret(context.Background(), "", url.Values{"orderId": {"42"}})
	assert.ErrorIs(t, err, domain.ErrPaymentProcessing)
}

func TestInterpret_ResetsCheckout(t *testing.T) {
	api := payableAPI()
	checkout := newCheckout(api, nil)
	_, err := checkout.Begin(context.Background(), "sess", 5)
	require.NoError(t, err)

	svc := NewPaymentResultService(api, nil, checkout)
	_, err = svc.Interpret(context.Background(), "sess", url.Values{"orderId": {"5"}, "status": {"completed"}})
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutIdle, checkout.State("sess"))
}
