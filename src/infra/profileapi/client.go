package profileapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"personrefresh/src/domain"

	"github.com/sony/gobreaker"
)

const (
	userAgent          = "personrefresh/1.0"
	defaultTimeout     = 15 * time.Second
	defaultSessionTTL  = time.Hour
	maxErrorBodyLength = 512
)

// Client talks to the external profile service. Fetches go through a circuit
// breaker so a rate limited or unavailable service fails fast.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	tokens     TokenStore
	sessionTTL time.Duration
	token      string
}

type Options struct {
	Timeout    time.Duration
	SessionTTL time.Duration
	// Tokens is optional; without it the session lives only in memory.
	Tokens TokenStore
}

func NewClient(logger *slog.Logger, baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}

	c := &Client{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		tokens:     opts.Tokens,
		sessionTTL: opts.SessionTTL,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "profile-api",
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		// Perfil inexistente não indica problema no serviço.
		IsSuccessful: func(err error) bool {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode == http.StatusNotFound
			}
			return err == nil
		},
	})

	return c
}

// EstablishSession authenticates once and keeps the bearer token for later
// fetches. A cached token for identity is reused when the store has one.
// Rejected credentials are reported as domain.ErrSessionRejected.
func (c *Client) EstablishSession(ctx context.Context, identity string, secret string) error {
	if c.tokens != nil {
		token, found, err := c.tokens.GetToken(ctx, identity)
		if err != nil {
			c.logger.Warn("Session cache unavailable, logging in", "error", err)
		}
		if found && token != "" {
			c.token = token
			c.logger.Info("Reusing cached profile service session")
			return nil
		}
	}

	body, err := json.Marshal(sessionRequest{Email: identity, Password: secret})
	if err != nil {
		return fmt.Errorf("encode session request: %w", err)
	}

	endpoint := c.baseURL + "/v1/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("%w: %w", domain.ErrSessionRejected, err)
		}
		return fmt.Errorf("establish session: %w", err)
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return fmt.Errorf("decode session response: %w", err)
	}
	if session.Token == "" {
		return fmt.Errorf("%w: empty session token", domain.ErrSessionRejected)
	}
	c.token = session.Token

	if c.tokens != nil {
		ttl := c.sessionTTL
		if session.ExpiresIn > 0 {
			ttl = time.Duration(session.ExpiresIn) * time.Second
		}
		if err := c.tokens.SaveToken(ctx, identity, session.Token, ttl); err != nil {
			c.logger.Warn("Failed to cache profile service session", "error", err)
		}
	}

	c.logger.Info("Profile service session established")
	return nil
}

// FetchProfile returns the raw profile document for linkedinURL.
func (c *Client) FetchProfile(ctx context.Context, linkedinURL string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("url", linkedinURL)
	endpoint := c.baseURL + "/v1/profiles?" + params.Encode()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		return c.do(req)
	})
	if err != nil {
		return nil, err
	}

	body := result.([]byte)
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", domain.ErrMalformedProfile)
	}

	return json.RawMessage(body), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http %s: %w", req.Method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := string(body)
		if len(message) > maxErrorBodyLength {
			message = message[:maxErrorBodyLength]
		}
		return nil, NewHTTPError(resp.StatusCode, req.URL.Redacted(), message)
	}

	return body, nil
}
