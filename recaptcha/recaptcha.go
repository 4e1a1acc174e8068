// Package recaptcha verifies reCAPTCHA tokens with Google's siteverify API.
package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
)

// DefaultVerifyURL is Google's verification endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Result is the outcome of a verification
type Result struct {
	Success    bool
	Score      float64
	Action     string
	ErrorCodes []string
}

// Verifier checks a client-side captcha token
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (Result, error)
}

type siteVerifyResponse struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score,omitempty"`
	Action      string   `json:"action,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Client calls the siteverify API
type Client struct {
	secret     string
	minScore   float64
	verifyURL  string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithVerifyURL points the client at another endpoint (tests, proxies)
func WithVerifyURL(u string) ClientOption {
	return func(c *Client) {
		c.verifyURL = u
	}
}

// WithHTTPClient sets the HTTP client used for verification calls
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a verifier. Tokens scoring below minScore are rejected;
// v2 responses carry no score and are treated as 1.0.
func NewClient(secret string, minScore float64, options ...ClientOption) (*Client, error) {
	if secret == "" {
		return nil, fmt.Errorf("[recaptcha NewClient] RECAPTCHA_SECRET is not set: %w", liberrors.ErrConfiguration)
	}
	c := &Client{
		secret:     secret,
		minScore:   minScore,
		verifyURL:  DefaultVerifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Verify posts the token to siteverify. A rejected token is a Result with
// Success false and a nil error; transport failures are errors.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (Result, error) {
	if strings.TrimSpace(token) == "" {
		return Result{Success: false, ErrorCodes: []string{"missing-input-response"}}, nil
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("[recaptcha Verify] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("[recaptcha Verify] siteverify call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("[recaptcha Verify] siteverify returned %d", resp.StatusCode)
	}

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("[recaptcha Verify] decode response: %w", err)
	}

	result := Result{
		Success:    body.Success,
		Score:      1.0,
		Action:     body.Action,
		ErrorCodes: body.ErrorCodes,
	}
	if body.Score != nil {
		result.Score = *body.Score
	}
	if result.Success && result.Score < c.minScore {
		result.Success = false
		result.ErrorCodes = append(result.ErrorCodes, "score-below-threshold")
	}
	return result, nil
}

// Disabled accepts every token. Used in development when no secret is configured.
type Disabled struct{}

func (Disabled) Verify(context.Context, string, string) (Result, error) {
	return Result{Success: true, Score: 1.0}, nil
}
