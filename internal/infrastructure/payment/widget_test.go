package payment

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserWidget(t *testing.T) {
	w := NewBrowserWidget()
	assert.ErrorIs(t, w.Open(context.Background()), ErrNotConfigured)
	assert.ErrorIs(t, w.Configure(WidgetOptions{}), ErrMissingToken)

	require.NoError(t, w.Configure(WidgetOptions{SessionToken: "st", Channel: ChannelWeb}))
	_, ok := w.Options()
	assert.False(t, ok, "options are handed out only after open")

	require.NoError(t, w.Open(context.Background()))
	opts, ok := w.Options()
	require.True(t, ok)
	assert.Equal(t, "st", opts.SessionToken)
}

func TestPick(t *testing.T) {
	assert.Equal(t, OutcomeInline, pick(0))
	assert.Equal(t, OutcomeInline, pick(69))
	assert.Equal(t, OutcomeRedirect, pick(70))
	assert.Equal(t, OutcomeRedirect, pick(89))
	assert.Equal(t, OutcomeAbandoned, pick(90))
}

func TestSimulatedWidget_Outcomes(t *testing.T) {
	opts := WidgetOptions{SessionToken: "st", PurchaseNumber: "12", CheckoutSessionID: "1-abc", AmountText: "10.00"}

	t.Run("inline", func(t *testing.T) {
		w := NewSimulatedWidget()
		w.Delay = time.Millisecond
		w.chance = func() int { return 10 }
		var purchase, token string
		w.Complete = func(_ context.Context, pn, tt string) { purchase, token = pn, tt }
		require.NoError(t, w.Configure(opts))
		require.NoError(t, w.Open(context.Background()))
		assert.Equal(t, "12", purchase)
		assert.NotEmpty(t, token)
		assert.Equal(t, OutcomeInline, w.LastOutcome())
	})

	t.Run("redirect", func(t *testing.T) {
		w := NewSimulatedWidget()
		w.Delay = time.Millisecond
		w.chance = func() int { return 75 }
		var params url.Values
		w.Redirect = func(_ context.Context, p url.Values) { params = p }
		require.NoError(t, w.Configure(opts))
		require.NoError(t, w.Open(context.Background()))
		assert.Equal(t, "12", params.Get("orderId"))
		assert.Equal(t, "1-abc", params.Get("sessionId"))
		assert.Equal(t, "false", params.Get("success"))
	})

	t.Run("abandoned", func(t *testing.T) {
		w := NewSimulatedWidget()
		w.Delay = time.Millisecond
		w.chance = func() int { return 95 }
		called := false
		w.Complete = func(context.Context, string, string) { called = true }
		w.Redirect = func(context.Context, url.Values) { called = true }
		require.NoError(t, w.Configure(opts))
		require.NoError(t, w.Open(context.Background()))
		assert.False(t, called)
		assert.Equal(t, OutcomeAbandoned, w.LastOutcome())
	})

	t.Run("cancelled", func(t *testing.T) {
		w := NewSimulatedWidget()
		w.Delay = time.Second
		require.NoError(t, w.Configure(opts))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, w.Open(ctx), context.Canceled)
	})
}
