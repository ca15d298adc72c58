// Package client is a Go client for the admin platform API with an
// injectable, persistent session store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// envelope mirrors the server's response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Client calls the admin platform API. The session store supplies the
// bearer token for authenticated calls and is updated on login/logout.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
}

// New creates a client against baseURL (e.g. http://localhost:8001) using
// the given session store.
func New(baseURL string, store SessionStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// LoginUser is the identity block in the login response.
type LoginUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
}

type loginResponse struct {
	Success      bool      `json:"success"`
	User         LoginUser `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Error        string    `json:"error"`
}

// Login authenticates and saves the resulting session in the store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginUser, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var lr loginResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: lr.Error}
	}

	sess := &Session{
		AccessToken:  lr.AccessToken,
		RefreshToken: lr.RefreshToken,
		UserID:       lr.User.ID,
		Email:        lr.User.Email,
	}
	if err := c.store.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &lr.User, nil
}

// Logout clears the saved session. The server keeps no token state, so the
// token simply ages out.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// CurrentSession returns the saved session, or ErrNoSession.
func (c *Client) CurrentSession() (*Session, error) {
	return c.store.Load()
}

// do performs an authenticated request and decodes the envelope data into
// out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	sess, err := c.store.Load()
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
