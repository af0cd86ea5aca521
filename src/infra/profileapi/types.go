package profileapi

import (
	"context"
	"fmt"
	"time"
)

// HTTPError is returned for any non-2xx answer of the profile service.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// Status and Response let callers log the failure without importing this package.
func (e *HTTPError) Status() int {
	return e.StatusCode
}

func (e *HTTPError) Response() string {
	return e.Message
}

func NewHTTPError(statusCode int, url, message string) error {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Message:    message,
	}
}

// TokenStore keeps session tokens across process restarts.
type TokenStore interface {
	GetToken(ctx context.Context, identity string) (string, bool, error)
	SaveToken(ctx context.Context, identity string, token string, ttl time.Duration) error
}

type sessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
