// Package api is the HTTP client for the chat backend. It speaks the
// backend's documented contract and nothing else: form-encoded login, JSON
// everywhere else, bearer token on authenticated calls. Failures come back
// as sentinel errors or a StatusError; nothing is retried here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chatterm/internal/chat"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 30 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 4 * 1024 * 1024
)

var (
	// ErrUnauthorized means the token was rejected (missing, expired or
	// invalid). Callers treat it as an implicit logout.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadCredentials is a failed username/password login.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrNotFound means the requested conversation does not exist.
	ErrNotFound = errors.New("conversation not found")
)

// StatusError is any non-2xx response not covered by a sentinel.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// TokenSource supplies the bearer token for authenticated requests. The
// token is read at request-build time, so a store cleared by logout can
// never leak into a later request.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// Login exchanges credentials for a bearer token. The backend takes the
// pair form-encoded and answers {"access_token": ...}.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}
	log.Printf("api: POST /login -> %d", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrBadCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, body)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parse login response: %w", err)
	}
	if out.AccessToken == "" {
		return "", errors.New("login response missing access_token")
	}
	return out.AccessToken, nil
}

// RegisterRequest mirrors the backend's registration payload.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register creates an account. Failures surface the backend's detail
// message so the form can show it inline.
func (c *Client) Register(ctx context.Context, reg RegisterRequest) error {
	payload, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("marshal register request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register",
		bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return err
	}
	log.Printf("api: POST /register -> %d", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return statusError(resp.StatusCode, body)
}

// Conversations fetches the full directory for the current session, in
// whatever order the server chose.
func (c *Client) Conversations(ctx context.Context) ([]chat.Conversation, error) {
	var out []chat.Conversation
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateConversation asks the server for a fresh conversation.
func (c *Client) CreateConversation(ctx context.Context) (chat.Conversation, error) {
	var out chat.Conversation
	if err := c.do(ctx, http.MethodPost, "/api/conversations", nil, &out); err != nil {
		return chat.Conversation{}, err
	}
	return out, nil
}

// Messages fetches the ordered history for one conversation. A vanished
// conversation comes back as ErrNotFound.
func (c *Client) Messages(ctx context.Context, convID int64) ([]chat.Message, error) {
	var out []chat.Message
	path := fmt.Sprintf("/api/conversations/%d/messages", convID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage posts one user turn and returns the assistant's reply.
func (c *Client) SendMessage(ctx context.Context, convID int64, content string) (chat.Message, error) {
	in := chat.Message{Role: chat.RoleUser, Content: content}
	var out chat.Message
	path := fmt.Sprintf("/api/conversations/%d/messages", convID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return chat.Message{}, err
	}
	return out, nil
}

// do runs one authenticated JSON round trip.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	token := c.tokens.Token()
	if token == "" {
		return ErrUnauthorized
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return err
	}
	log.Printf("api: %s %s -> %d", method, path, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return statusError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s %s response: %w", method, path, err)
	}
	return nil
}

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > maxResponseSize {
		return nil, fmt.Errorf("response exceeded %d bytes", maxResponseSize)
	}
	return body, nil
}

// statusError extracts the backend's {"detail": ...} message when present.
func statusError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &StatusError{Status: status, Detail: payload.Detail}
	}
	return &StatusError{Status: status, Detail: strings.TrimSpace(string(body))}
}
