// Package api is the HTTP gateway to the invoice backend. It wraps request
// and response plumbing, bearer credential injection, and a one-shot token
// refresh on authorization failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"invoicectl/internal/logger"
	"invoicectl/internal/session"
)

// User-facing gateway failures.
var (
	// ErrSessionExpired is returned when a 401 could not be recovered by a
	// token refresh. The session has been cleared by the time callers see it.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrRateLimited is returned on HTTP 429. The gateway never retries
	// rate-limited requests on its own.
	ErrRateLimited = errors.New("too many attempts, please try again later")
)

// errUnauthorized marks a 401 internally so the retry path can recognize
// it; it never escapes the package.
var errUnauthorized = errors.New("unauthorized")

// RequestError is any non-success response that is not a 401 or 429. The
// server-supplied detail, when present, is the message shown to the user.
type RequestError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed (HTTP %d)", e.Status)
}

// Client performs authenticated calls against the backend. It is safe for
// concurrent use; simultaneous 401s share a single refresh attempt through
// the singleflight group.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	refresh singleflight.Group
	log     zerolog.Logger
}

// NewClient builds a gateway for the given base URL, reading and rotating
// credentials through sess.
func NewClient(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
		log:     logger.WithComponent("api"),
	}
}

// do performs a request with the 401-refresh-retry policy: at most one
// refresh attempt, then at most one retry of the original request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.attempt(ctx, method, path, body, out)
	if !errors.Is(err, errUnauthorized) {
		return err
	}

	if refreshErr := c.refreshTokens(ctx); refreshErr != nil {
		c.expireSession(refreshErr)
		return ErrSessionExpired
	}

	err = c.attempt(ctx, method, path, body, out)
	if errors.Is(err, errUnauthorized) {
		// Fresh token and still rejected; give up on the session.
		c.expireSession(err)
		return ErrSessionExpired
	}
	return err
}

// attempt performs exactly one HTTP round trip and decodes the response
// into out (when non-nil). A 204 is success with no payload.
func (c *Client) attempt(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("Request transport failure")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("Request completed")

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return errUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn().
			Str("request_id", requestID).
			Str("path", path).
			Msg("Rate limited by backend")
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return c.requestError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// refreshTokens exchanges the refresh token for a new pair. Concurrent
// callers coalesce into a single in-flight exchange and share its outcome.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, shared := c.refresh.Do("refresh", func() (any, error) {
		refreshToken := c.session.RefreshToken()
		if refreshToken == "" {
			return nil, errUnauthorized
		}

		var tok wireToken
		err := c.attempt(ctx, http.MethodPost, "/auth/refresh",
			map[string]string{"refresh_token": refreshToken}, &tok)
		if err != nil {
			return nil, err
		}
		return nil, c.session.SetTokens(tok.AccessToken, tok.RefreshToken)
	})
	if err == nil && shared {
		c.log.Debug().Msg("Reused in-flight token refresh")
	}
	return err
}

// expireSession clears persisted credentials after an unrecoverable 401.
func (c *Client) expireSession(cause error) {
	c.log.Warn().Err(cause).Msg("Session expired, clearing credentials")
	if err := c.session.Clear(); err != nil {
		c.log.Error().Err(err).Msg("Failed to clear session file")
	}
}

// requestError builds a RequestError from a non-success response, keeping
// the server-supplied detail verbatim when the body carries one.
func (c *Client) requestError(resp *http.Response) error {
	var detail errorBody
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(raw) > 0 {
		// An unreadable body falls through to the generic message.
		_ = json.Unmarshal(raw, &detail)
	}
	return &RequestError{Status: resp.StatusCode, Detail: detail.Detail}
}

// getBytes performs an authenticated GET for a binary payload (the PDF
// endpoint), with the same 401 policy as do.
func (c *Client) getBytes(ctx context.Context, path string) ([]byte, error) {
	data, err := c.attemptBytes(ctx, path)
	if !errors.Is(err, errUnauthorized) {
		return data, err
	}
	if refreshErr := c.refreshTokens(ctx); refreshErr != nil {
		c.expireSession(refreshErr)
		return nil, ErrSessionExpired
	}
	data, err = c.attemptBytes(ctx, path)
	if errors.Is(err, errUnauthorized) {
		c.expireSession(err)
		return nil, ErrSessionExpired
	}
	return data, err
}

func (c *Client) attemptBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, c.requestError(resp)
	}
	return io.ReadAll(resp.Body)
}
