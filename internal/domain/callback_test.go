package domain

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGatewayCallback_MissingOrderID(t *testing.T) {
	_, err := ParseGatewayCallback(url.Values{"status": {"completed"}})
	assert.ErrorIs(t, err, ErrMissingOrderID)
}

func TestParseGatewayCallback_InvalidOrderID(t *testing.T) {
	_, err := ParseGatewayCallback(url.Values{"orderId": {"12abc"}})
	assert.ErrorIs(t, err, ErrInvalidOrderID)
}

func TestParseGatewayCallback_Redirect(t *testing.T) {
	cb, err := ParseGatewayCallback(url.Values{
		"orderId":           {"5"},
		"success":           {"false"},
		"error":             {"declined"},
		"authorizationCode": {""},
		"cardBrand":         {"visa"},
	})
	require.NoError(t, err)

	out, ok := cb.(RedirectOutcome)
	require.True(t, ok)
	assert.Equal(t, int64(5), out.OrderID)
	require.NotNil(t, out.Success)
	assert.Equal(t, "false", *out.Success)
	assert.Nil(t, out.Status)
	assert.Equal(t, "declined", *out.Error)
	assert.Nil(t, out.AuthorizationCode)
	assert.Equal(t, "visa", *out.CardBrand)
}

func TestParseGatewayCallback_RedirectWinsOverLegacyFields(t *testing.T) {
	cb, err := ParseGatewayCallback(url.Values{
		"orderId":          {"5"},
		"status":           {"completed"},
		"transactionToken": {"tok"},
	})
	require.NoError(t, err)
	assert.IsType(t, RedirectOutcome{}, cb)
}

func TestParseGatewayCallback_Legacy(t *testing.T) {
	cb, err := ParseGatewayCallback(url.Values{
		"orderId":          {"42"},
		"sessionId":        {"1700000000000-abc"},
		"transactionToken": {"tok-1"},
		"brand":            {"mastercard"},
		"card":             {"5555****4444"},
	})
	require.NoError(t, err)

	legacy, ok := cb.(LegacyCallback)
	require.True(t, ok)
	assert.Equal(t, "42", legacy.PurchaseNumber)
	assert.Equal(t, "mastercard", *legacy.CardBrand)
	assert.Equal(t, "5555****4444", *legacy.CardNumber)
	assert.Equal(t, "1700000000000-abc", *legacy.SessionID)

	body, err := json.Marshal(legacy)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, "tok-1", fields["transactionToken"])
	assert.Contains(t, fields, "errorCode")
	assert.Nil(t, fields["errorCode"])
	assert.NotContains(t, fields, "orderId")
}

func TestInlineCompletion_Validate(t *testing.T) {
	assert.ErrorIs(t, InlineCompletion{OrderID: 1}.Validate(), ErrMissingTransaction)
	assert.ErrorIs(t, InlineCompletion{TransactionToken: "t"}.Validate(), ErrMissingOrderID)
	assert.NoError(t, InlineCompletion{OrderID: 1, TransactionToken: "t"}.Validate())
}
