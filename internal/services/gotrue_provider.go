package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/models"
)

// GoTrueIdentityProvider delegates sign-in and token exchange to a hosted
// GoTrue-compatible auth service.
type GoTrueIdentityProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoTrueIdentityProvider creates a provider for the auth service at baseURL.
// A nil client gets a default with a 10 second timeout.
func NewGoTrueIdentityProvider(baseURL, apiKey string, client *http.Client) *GoTrueIdentityProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoTrueIdentityProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type goTrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type goTrueSession struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	User        goTrueUser `json:"user"`
}

// GetUser exchanges an access token for the user it belongs to.
func (p *GoTrueIdentityProvider) GetUser(ctx context.Context, token string) (*models.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var user goTrueUser
	status, err := p.do(req, &user)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: auth service answered %d", ErrInvalidToken, status)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: no user for token", ErrInvalidToken)
	}
	return &models.Identity{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// SignIn performs a password grant against the auth service.
func (p *GoTrueIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var session goTrueSession
	status, err := p.do(req, &session)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case status != http.StatusOK:
		return nil, fmt.Errorf("auth service answered %d", status)
	}

	return &models.Session{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresIn:   session.ExpiresIn,
		User:        models.Identity{ID: session.User.ID, Email: session.User.Email, Role: session.User.Role},
	}, nil
}

// do sends req with the project api key and decodes a 200 body into out.
func (p *GoTrueIdentityProvider) do(req *http.Request, out any) (int, error) {
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("auth service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode auth service response: %w", err)
	}
	return resp.StatusCode, nil
}
