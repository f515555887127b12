// Package idp implements a client for the remote identity provider
// (a Supabase/GoTrue compatible auth REST API). All user accounts and
// credentials are stored by the provider, the portal only forwards calls.
package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hrms-project/hrms-portal/internal"
	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

// RequestCounter counts outgoing provider requests per operation.
type RequestCounter interface {
	CountProviderRequest(operation string)
}

type noopCounter struct{}

func (noopCounter) CountProviderRequest(string) {}

type Client struct {
	cfg     config.ProviderConfig
	client  *http.Client
	metrics RequestCounter
}

// NewClient creates a new identity provider client. The HTTP client timeout
// bounds every provider round-trip, requests are additionally bound by the
// request context.
func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: noopCounter{},
	}
}

// WithMetrics attaches a request counter to the client and returns the client.
func (c *Client) WithMetrics(metrics RequestCounter) *Client {
	if metrics != nil {
		c.metrics = metrics
	}
	return c
}

// LoginResult is the provider response for a successful password sign-in.
type LoginResult struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         *RawUser `json:"user"`
}

// SignInWithPassword authenticates a user with email and password.
// The returned access token acts as the session credential of that user.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*LoginResult, error) {
	c.metrics.CountProviderRequest("sign_in")

	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.cfg.ServiceRoleKey,
		map[string]any{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// SignOut invalidates the given user access token with the provider.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	c.metrics.CountProviderRequest("sign_out")

	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

type signUpResponse struct {
	User *RawUser `json:"user"`

	RawUser // providers without a session wrapper return the user record directly
}

// SignUp registers a new user with the provider. The metadata map is stored as
// arbitrary user metadata alongside the account.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*RawUser, error) {
	c.metrics.CountProviderRequest("sign_up")

	var result signUpResponse
	err := c.do(ctx, http.MethodPost, "/auth/v1/signup", c.cfg.ServiceRoleKey,
		map[string]any{"email": email, "password": password, "data": metadata}, &result)
	if err != nil {
		return nil, err
	}

	if result.User != nil {
		return result.User, nil
	}
	if result.Id != "" {
		raw := result.RawUser
		return &raw, nil
	}

	return nil, nil // no principal was created
}

type userListResponse struct {
	Users []RawUser `json:"users"`
}

// AdminListUsers fetches all user records from the provider's admin directory.
// Both the bare-array and the wrapped response format are handled.
func (c *Client) AdminListUsers(ctx context.Context) ([]RawUser, error) {
	c.metrics.CountProviderRequest("list_users")

	var body json.RawMessage
	err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users", c.cfg.ServiceRoleKey, nil, &body)
	if err != nil {
		return nil, err
	}

	var users []RawUser
	if err := json.Unmarshal(body, &users); err == nil {
		return users, nil
	}

	var wrapped userListResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected user list response: %w", err)
	}

	return wrapped.Users, nil
}

// AdminGetUser fetches a single user record by its provider id.
func (c *Client) AdminGetUser(ctx context.Context, id domain.UserIdentifier) (*RawUser, error) {
	c.metrics.CountProviderRequest("get_user")

	var user RawUser
	err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+url.PathEscape(string(id)),
		c.cfg.ServiceRoleKey, nil, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// AdminUpdateUser updates a user record via the privileged admin endpoint.
func (c *Client) AdminUpdateUser(
	ctx context.Context,
	id domain.UserIdentifier,
	patch domain.UserPatch,
) (*RawUser, error) {
	c.metrics.CountProviderRequest("update_user")

	var user RawUser
	err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(string(id)),
		c.cfg.ServiceRoleKey, adminPatchBody(patch), &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// AdminDeleteUser removes a user record via the privileged admin endpoint.
func (c *Client) AdminDeleteUser(ctx context.Context, id domain.UserIdentifier) error {
	c.metrics.CountProviderRequest("delete_user")

	return c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(string(id)),
		c.cfg.ServiceRoleKey, nil, nil)
}

// UpdateSelf updates the record of the currently signed-in user. It authenticates
// with the user's own access token instead of the service role, so it does not
// require admin privileges.
func (c *Client) UpdateSelf(ctx context.Context, accessToken string, patch domain.UserPatch) (*RawUser, error) {
	c.metrics.CountProviderRequest("update_self")

	var user RawUser
	err := c.do(ctx, http.MethodPut, "/auth/v1/user", accessToken, selfPatchBody(patch), &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func adminPatchBody(patch domain.UserPatch) map[string]any {
	return map[string]any{
		"email":         patch.Email,
		"user_metadata": metadataMap(patch),
	}
}

func selfPatchBody(patch domain.UserPatch) map[string]any {
	return map[string]any{
		"email": patch.Email,
		"data":  metadataMap(patch),
	}
}

func metadataMap(patch domain.UserPatch) map[string]any {
	return map[string]any{
		"first_name": patch.Firstname,
		"last_name":  patch.Lastname,
		"is_admin":   patch.IsAdmin,
	}
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseUrl+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.cfg.ServiceRoleKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer internal.LogClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseApiError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}
