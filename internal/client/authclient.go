// Package client implements the session lifecycle collaborators over HTTP.
// Swapping the mock backend for a real one is a matter of pointing BaseURL
// elsewhere; the session manager never changes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/session"
)

// AuthClient talks to the backend auth endpoints. The request timeout
// doubles as the startup-validation timeout, so a hung backend fails the
// initialized gate instead of wedging it.
type AuthClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "request failed"
}

// Login implements session.AuthAPI.
func (a *AuthClient) Login(ctx context.Context, creds session.Credentials) (*domain.User, string, error) {
	var out authResponse
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", creds, "", &out); err != nil {
		return nil, "", err
	}
	if out.User == nil || out.Token == "" {
		return nil, "", domain.InternalError{Msg: "malformed login response"}
	}
	return out.User, out.Token, nil
}

// ValidateToken implements session.AuthAPI.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) (*domain.User, string, error) {
	var out authResponse
	if err := a.do(ctx, http.MethodGet, "/api/auth/validate", nil, token, &out); err != nil {
		return nil, "", err
	}
	if out.User == nil || out.Token == "" {
		return nil, "", domain.InternalError{Msg: "malformed validate response"}
	}
	return out.User, out.Token, nil
}

// Logout implements session.AuthAPI. Best-effort by contract.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.do(ctx, http.MethodPost, "/api/auth/logout", nil, token, nil)
}

// RequestPin, VerifyPin and ResetPassword drive the forgot-password flow.
func (a *AuthClient) RequestPin(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return a.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, "", nil)
}

func (a *AuthClient) VerifyPin(ctx context.Context, email, pin string) error {
	body := map[string]string{"email": email, "pin": pin}
	return a.do(ctx, http.MethodPost, "/api/auth/verify-pin", body, "", nil)
}

func (a *AuthClient) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "new_password": newPassword}
	return a.do(ctx, http.MethodPost, "/api/auth/reset-password", body, "", nil)
}

func (a *AuthClient) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.InternalError{Msg: "encode request", Err: err}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reader)
	if err != nil {
		return domain.InternalError{Msg: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return domain.InternalError{Msg: "auth backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return domain.UnauthorizedError{Msg: errBody.text()}
		case resp.StatusCode == http.StatusNotFound:
			return domain.NotFoundError{Resource: errBody.text()}
		case resp.StatusCode == http.StatusTooManyRequests:
			return domain.LockedError{Msg: errBody.text()}
		case resp.StatusCode >= 500:
			return domain.InternalError{Msg: errBody.text()}
		default:
			return domain.ValidationError{Msg: errBody.text()}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.InternalError{Msg: fmt.Sprintf("decode %s response", path), Err: err}
	}
	return nil
}
