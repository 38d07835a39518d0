// Package client wraps the backend HTTP API. It owns the token pair,
// transparently refreshes an expired access token once per call, and maps
// error envelopes back onto the shared sentinel errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/common"
)

// Client is a stateful API client. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onTokens     func(access, refresh string)
}

// New builds a Client for baseURL. timeout applies per request; the SSE
// watch stream uses its own non-timing-out transport.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokens seeds the token pair, e.g. from a persisted session.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()
}

// Tokens returns the current token pair.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// OnTokensChanged registers a hook invoked whenever the token pair rotates,
// so callers can persist the new session.
func (c *Client) OnTokensChanged(fn func(access, refresh string)) {
	c.mu.Lock()
	c.onTokens = fn
	c.mu.Unlock()
}

func (c *Client) storeTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	fn := c.onTokens
	c.mu.Unlock()
	if fn != nil {
		fn(access, refresh)
	}
}

// --- auth ---

func (c *Client) SignUp(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", api.SignUpRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}
	c.storeTokens(resp.AccessToken, resp.RefreshToken)
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", api.LoginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}
	c.storeTokens(resp.AccessToken, resp.RefreshToken)
	return &resp, nil
}

// Logout revokes the refresh token server-side and drops both tokens
// locally regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, refresh := c.Tokens()
	var err error
	if refresh != "" {
		err = c.doJSON(ctx, http.MethodPost, "/api/auth/logout", api.LogoutRequest{RefreshToken: refresh}, nil, false)
	}
	c.storeTokens("", "")
	return err
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/reset/request", api.ResetRequest{Email: email}, nil, false)
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/reset/confirm", api.ResetConfirmRequest{Code: code, NewPassword: newPassword}, nil, false)
}

func (c *Client) refresh(ctx context.Context) error {
	_, refreshToken := c.Tokens()
	if refreshToken == "" {
		return common.ErrNotAuthenticated
	}

	var resp api.RefreshResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", api.RefreshRequest{RefreshToken: refreshToken}, &resp, false); err != nil {
		return err
	}
	c.storeTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// --- records ---

func (c *Client) ListRecords(ctx context.Context) (api.Snapshot, error) {
	var snapshot api.Snapshot
	err := c.doJSON(ctx, http.MethodGet, "/api/records", nil, &snapshot, true)
	return snapshot, err
}

func (c *Client) CreateRecord(ctx context.Context, req api.CreateRecordRequest) (*api.Record, error) {
	var rec api.Record
	if err := c.doJSON(ctx, http.MethodPost, "/api/records", req, &rec, true); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) UpdateRecord(ctx context.Context, id string, req api.UpdateRecordRequest) (*api.Record, error) {
	var rec api.Record
	if err := c.doJSON(ctx, http.MethodPatch, "/api/records/"+id, req, &rec, true); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/records/"+id, nil, nil, true)
}

// --- uploads, geocoding, map config ---

func (c *Client) RequestUpload(ctx context.Context, fileName string) (*api.UploadResponse, error) {
	var resp api.UploadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/uploads", api.UploadRequest{FileName: fileName}, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	path := "/api/geocode/reverse?lat=" + strconv.FormatFloat(lat, 'f', -1, 64) +
		"&lng=" + strconv.FormatFloat(lng, 'f', -1, 64)
	var resp api.GeocodeResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return "", err
	}
	return resp.Address, nil
}

func (c *Client) MapConfig(ctx context.Context) (*api.MapConfig, error) {
	var resp api.MapConfig
	if err := c.doJSON(ctx, http.MethodGet, "/api/mapconfig", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- plumbing ---

// doJSON performs one API call. Authenticated calls that fail with an
// expired access token trigger a single refresh followed by one retry,
// mirroring what a session-holding UI does on token expiry.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, authed bool) error {
	err := c.doJSONOnce(ctx, method, path, body, out, authed)
	if authed && errors.Is(err, common.ErrTokenExpired) {
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return c.doJSONOnce(ctx, method, path, body, out, authed)
	}
	return err
}

func (c *Client) doJSONOnce(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		access, _ := c.Tokens()
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// mapError decodes the error envelope and returns the matching sentinel.
// User-facing messages come from the sentinel, never from the raw body.
func mapError(resp *http.Response) error {
	var body api.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	switch body.Code {
	case api.CodeInvalidCredentials:
		return common.ErrInvalidCredentials
	case api.CodeUserNotFound:
		return common.ErrUserNotFound
	case api.CodeEmailInUse:
		return common.ErrEmailInUse
	case api.CodeWeakPassword:
		return common.ErrWeakPassword
	case api.CodeInvalidEmail:
		return common.ErrInvalidEmail
	case api.CodeExpiredCode:
		return common.ErrExpiredCode
	case api.CodeInvalidCode:
		return common.ErrInvalidCode
	case api.CodeTokenExpired:
		return common.ErrTokenExpired
	case api.CodeUnauthorized:
		return common.ErrorUnauthorized
	case api.CodePermissionDenied:
		return common.ErrPermissionDenied
	case api.CodeNoResult:
		return common.ErrNoGeocodeResult
	case api.CodeNotFound:
		return common.ErrorNotFound
	default:
		return common.ErrorInternal
	}
}
