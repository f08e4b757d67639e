// Package authapi is a stateless client for the book-store user API.
// One method per server capability; none of them touch local state, all
// state mutation happens in the session manager after interpreting the
// result.
package authapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
)

const Version = "0.2.0"

const apiPrefix = "/api/v1/user"

var UserAgent = fmt.Sprintf("bookstore-auth-go/%s", Version)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client, dropping the transport
// built from Config.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func NewClient(config Config, options ...ClientOption) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		userAgent: UserAgent,
	}

	for _, option := range options {
		option(client)
	}

	if client.httpClient == nil {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: config.InsecureSkipVerify,
			},
		}
		client.httpClient = &http.Client{
			Transport: &customTransport{t: transport, userAgent: client.userAgent},
			Timeout:   timeout,
		}
	}

	return client, nil
}

// customTransport sets the User-Agent and a fresh request ID on every
// outgoing request.
type customTransport struct {
	t         http.RoundTripper
	userAgent string
}

func (c *customTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", ksuid.New().String())
	return c.t.RoundTrip(req)
}

// Register creates a new user account. The server mails the verification
// link itself.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Ack, error) {
	ack := new(Ack)
	err := c.postJSON(ctx, "/signup", signupRequest{Name: name, Email: email, Password: password}, "", ack)
	if err != nil {
		return nil, err
	}
	return ack, nil
}

// VerifyAccount redeems an account verification token.
func (c *Client) VerifyAccount(ctx context.Context, token, email string) (*Ack, error) {
	path := fmt.Sprintf("/user-account-verification/%s/%s", url.PathEscape(token), url.PathEscape(email))
	ack := new(Ack)
	if err := c.postJSON(ctx, path, nil, "", ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// Login exchanges credentials for an identity record and a token pair.
// An unverified account comes back with Verified false and no tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp := new(loginResponse)
	if err := c.postJSON(ctx, "/login", loginRequest{Email: email, Password: password}, "", resp); err != nil {
		return nil, err
	}

	result := &LoginResult{
		User:         resp.User,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Verified:     resp.Status == "success" && resp.AccessToken != "",
		Message:      resp.Message,
	}
	return result, nil
}

// SendPasswordResetLink asks the server to mail a password reset link.
func (c *Client) SendPasswordResetLink(ctx context.Context, email string) (*Ack, error) {
	ack := new(Ack)
	if err := c.postJSON(ctx, "/send-password-reset-link", resetLinkRequest{Email: email}, "", ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*Ack, error) {
	path := fmt.Sprintf("/reset-password/%s", url.PathEscape(token))
	ack := new(Ack)
	if err := c.postJSON(ctx, path, resetPasswordRequest{Password: password}, "", ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// RenewAccessToken obtains a fresh access token. The refresh token travels
// as the bearer credential and is never decoded locally.
func (c *Client) RenewAccessToken(ctx context.Context, refreshToken string) (*TokenRenewal, error) {
	resp := new(renewResponse)
	if err := c.postJSON(ctx, "/renew-access-token", nil, refreshToken, resp); err != nil {
		return nil, err
	}
	return &TokenRenewal{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		SessionID:    resp.SessionID,
		Message:      resp.Message,
	}, nil
}

// Logout terminates the server-side session identified by the access token.
func (c *Client) Logout(ctx context.Context, accessToken string) (*Ack, error) {
	ack := new(Ack)
	if err := c.postJSON(ctx, "/logout", nil, accessToken, ack); err != nil {
		return nil, err
	}
	return ack, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, bearer string, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	slog.Debug("calling user API", "method", http.MethodPost, "path", apiPrefix+path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}
