package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
)

// Client talks to the server API. It is safe for use from a single
// goroutine; token state is guarded anyway so a background refresh cannot
// race a call.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu     sync.Mutex
	tokens Tokens
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// IsLoggedIn reports whether the client holds a token pair.
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens.AccessToken != ""
}

func (c *Client) setTokens(t Tokens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = t
}

func (c *Client) currentTokens() Tokens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// doOnce performs one request and decodes the envelope regardless of the
// HTTP status; the envelope is the source of truth for the outcome.
func (c *Client) doOnce(ctx context.Context, method, path string, body any, authed bool) (*Result, int, error) {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.currentTokens().AccessToken)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	result := &Result{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("malformed server response: %w", err)
	}
	return result, resp.StatusCode, nil
}

// do wraps doOnce with a single refresh-and-retry on 401 for authed calls.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool) (*Result, error) {
	result, status, err := c.doOnce(ctx, method, path, body, authed)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && authed && c.currentTokens().RefreshToken != "" {
		if err := c.refresh(ctx); err != nil {
			return nil, common.ErrorUnauthorized
		}
		result, _, err = c.doOnce(ctx, method, path, body, authed)
		if err != nil {
			return nil, err
		}
	}

	if !result.Success {
		return nil, errors.New(result.Error)
	}
	return result, nil
}

func (c *Client) refresh(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.currentTokens().RefreshToken}
	result, _, err := c.doOnce(ctx, http.MethodPost, "/api/auth/refresh", body, false)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.New(result.Error)
	}

	var tokens Tokens
	if err := json.Unmarshal(result.Data, &tokens); err != nil {
		return err
	}
	c.setTokens(tokens)
	return nil
}

func decodeData[T any](result *Result) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(result.Data, out); err != nil {
		return nil, fmt.Errorf("malformed server payload: %w", err)
	}
	return out, nil
}

// --- auth calls ---

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/ping", nil, false)
	return err
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*Account, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	result, err := c.do(ctx, http.MethodPost, "/api/auth/register", body, false)
	if err != nil {
		return nil, err
	}
	return decodeData[Account](result)
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	result, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false)
	if err != nil {
		return err
	}

	tokens, err := decodeData[Tokens](result)
	if err != nil {
		return err
	}
	c.setTokens(*tokens)
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.currentTokens().RefreshToken}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", body, false)
	c.setTokens(Tokens{})
	return err
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/password", body, true)
	if err != nil {
		return err
	}
	// server invalidated every session, including this one
	c.setTokens(Tokens{})
	return nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/auth/account", nil, true)
	if err != nil {
		return err
	}
	c.setTokens(Tokens{})
	return nil
}

// --- record calls ---

func (c *Client) CreateRecord(ctx context.Context, name, email string, age int) (*Record, error) {
	body := map[string]any{"name": name, "email": email, "age": age}
	result, err := c.do(ctx, http.MethodPost, "/api/users", body, true)
	if err != nil {
		return nil, err
	}
	return decodeData[Record](result)
}

func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	result, err := c.do(ctx, http.MethodGet, "/api/users", nil, true)
	if err != nil {
		return nil, err
	}
	recs, err := decodeData[[]Record](result)
	if err != nil {
		return nil, err
	}
	return *recs, nil
}

func (c *Client) GetRecord(ctx context.Context, id int64) (*Record, error) {
	result, err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.FormatInt(id, 10), nil, true)
	if err != nil {
		return nil, err
	}
	return decodeData[Record](result)
}

func (c *Client) UpdateRecord(ctx context.Context, id int64, patch RecordPatch) (*Record, error) {
	result, err := c.do(ctx, http.MethodPut, "/api/users/"+strconv.FormatInt(id, 10), patch, true)
	if err != nil {
		return nil, err
	}
	return decodeData[Record](result)
}

func (c *Client) DeleteRecord(ctx context.Context, id int64) (*Record, error) {
	result, err := c.do(ctx, http.MethodDelete, "/api/users/"+strconv.FormatInt(id, 10), nil, true)
	if err != nil {
		return nil, err
	}
	return decodeData[Record](result)
}

func (c *Client) SearchRecords(ctx context.Context, name string) ([]Record, error) {
	result, err := c.do(ctx, http.MethodGet, "/api/users/search/"+url.PathEscape(name), nil, true)
	if err != nil {
		return nil, err
	}
	recs, err := decodeData[[]Record](result)
	if err != nil {
		return nil, err
	}
	return *recs, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	result, err := c.do(ctx, http.MethodGet, "/api/stats", nil, true)
	if err != nil {
		return nil, err
	}
	return decodeData[Stats](result)
}
