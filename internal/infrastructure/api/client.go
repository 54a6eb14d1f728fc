package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// amount renders a decimal as a bare JSON number; the storefront API does
// not accept quoted amounts.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Error is a non-2xx answer from the storefront API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("storefront api: %d %s", e.Status, e.Message)
}

// StatusOf returns the API status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type response struct {
	status int
	body   []byte
}

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
	// Transport defaults to http.DefaultTransport; it is always wrapped by otelhttp.
	Transport http.RoundTripper
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*response]
	logger  *slog.Logger
}

func New(opts Options) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "storefront-api",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.New("api").Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL: opts.BaseURL,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		breaker: breaker,
		logger:  logging.New("api"),
	}
}

// do sends one request. Server errors and network failures count against the
// breaker; client errors are returned as *Error without tripping it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	start := time.Now()
	res, err := c.breaker.Execute(func() (*response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if s, ok := domain.SessionFromContext(ctx); ok && s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		r := &response{status: resp.StatusCode, body: raw}
		if r.status >= http.StatusInternalServerError {
			return r, newError(r)
		}
		return r, nil
	})

	l := logging.FromCtx(ctx)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			l.Error("storefront api error", "method", method, "path", path, "status", apiErr.Status, "dur_ms", time.Since(start).Milliseconds())
			return nil, apiErr
		}
		l.Error("storefront api unreachable", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, path, err)
	}

	l.Debug("storefront api call", "method", method, "path", path, "status", res.status, "dur_ms", time.Since(start).Milliseconds())
	if res.status >= http.StatusBadRequest {
		return nil, newError(res)
	}
	return res, nil
}

func newError(r *response) *Error {
	var env envelope[json.RawMessage]
	msg := ""
	if err := json.Unmarshal(r.body, &env); err == nil {
		msg = env.Message
	}
	return &Error{Status: r.status, Message: msg}
}

// call sends a request and decodes the data member of the response envelope.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var zero T
	res, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return zero, err
	}
	var env envelope[T]
	if err := json.Unmarshal(res.body, &env); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return env.Data, nil
}

// ErrNoData is a successful answer whose envelope carries no data member.
var ErrNoData = fmt.Errorf("%w: response carried no data", domain.ErrTransport)

// callOne is call for endpoints that must answer with an object; a missing
// or null data member is an error rather than a nil result.
func callOne[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*T, error) {
	v, err := call[*T](ctx, c, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if v == nil {
		c.logger.Error("storefront api answered without data", "method", method, "path", path)
		return nil, fmt.Errorf("%w: %s %s", ErrNoData, method, path)
	}
	return v, nil
}
