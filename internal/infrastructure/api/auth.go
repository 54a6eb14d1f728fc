package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"coreshop-storefront/internal/domain"
)

// Login exchanges credentials for a token. The login answer is not wrapped in
// the usual envelope.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResponse, error) {
	res, err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds)
	if err != nil {
		if StatusOf(err) == http.StatusBadRequest {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	var login domain.LoginResponse
	if err := json.Unmarshal(res.body, &login); err != nil {
		return nil, fmt.Errorf("decode login: %w", err)
	}
	return &login, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.UserProfile, error) {
	profile, err := call[domain.UserProfile](ctx, c, http.MethodGet, "/user/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	return call[[]domain.Product](ctx, c, http.MethodGet, "/products", nil, nil)
}
