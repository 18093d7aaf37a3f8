package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes bounds how much of a response body is read. Portal
// payloads are small; anything larger is not a payload this client consumes.
const maxResponseBytes = 1 << 20

// envelope is the response body shape shared by the login and reset
// endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}

// Client executes requests against the role-specific portal endpoints.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a [Client] rooted at baseURL. hc may be nil, in which case
// http.DefaultClient is used (no deadline, matching the original contract).
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Login performs exactly one request to the login endpoint bound to the role
// path segment and returns the raw role-specific user payload on success.
func (c *Client) Login(ctx context.Context, rolePath, userID, password string) (json.RawMessage, error) {
	body := map[string]string{"userId": userID, "password": password}

	env, status, err := c.postJSON(ctx, "/api/"+rolePath+"/login", body)
	if err != nil {
		return nil, err
	}
	if cerr := classify(status, env); cerr != nil {
		return nil, cerr
	}
	return env.User, nil
}

// RequestPasswordReset performs one request to the role-specific reset
// endpoint. Success requires both transport success and the body-level flag.
func (c *Client) RequestPasswordReset(ctx context.Context, rolePath, userID string) error {
	body := map[string]string{"userId": userID}

	env, status, err := c.postJSON(ctx, "/api/"+rolePath+"/forgot-password", body)
	if err != nil {
		return err
	}
	if cerr := classify(status, env); cerr != nil {
		return cerr
	}
	return nil
}

// FetchProfile retrieves the authoritative profile for an identity. The body
// is returned whole; the caller consumes it directly as the new role data.
func (c *Client) FetchProfile(ctx context.Context, rolePath, id string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/"+rolePath+"/"+id, nil)
	if err != nil {
		return nil, networkError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if cerr := classify(resp.StatusCode, nil); cerr != nil {
			return nil, cerr
		}
	}

	if !json.Valid(data) {
		return nil, networkError(errInvalidJSON)
	}
	return data, nil
}

// CheckSession probes whether the server-side session behind the stored
// identity is still alive. It returns the server's view of the role and user
// ID, or a classified error.
func (c *Client) CheckSession(ctx context.Context) (role, userID string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/check-session", nil)
	if err != nil {
		return "", "", networkError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", "", networkError(err)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Role    string `json:"role"`
		UserID  string `json:"userId"`
	}
	env := &envelope{}
	if jerr := json.Unmarshal(data, &body); jerr == nil {
		env.Success = body.Success
		env.Message = body.Message
	}

	if cerr := classify(resp.StatusCode, env); cerr != nil {
		return "", "", cerr
	}
	return body.Role, body.UserID, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*envelope, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, networkError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, networkError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, networkError(err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// An unparseable body with no usable status context is a transport
		// class failure; with an error status the status still classifies.
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, 0, networkError(errInvalidJSON)
		}
		return &envelope{}, resp.StatusCode, nil
	}

	return &env, resp.StatusCode, nil
}
