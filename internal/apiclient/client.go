package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/bao-console/internal/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	SessionHeader   = "X-Session-Id"
	SessionCookie   = "session_id"
	RequestIDHeader = "X-Request-Id"
)

// TokenSource yields the current session id, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Client is the one HTTP entry point shared by every repository.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.ZapLogger
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, log logger.ZapLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  log,
	}
}

// HasSession reports whether a session token is held locally.
func (c *Client) HasSession() bool {
	return c.tokens != nil && c.tokens.Token() != ""
}

// Do issues a JSON request. body and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// DoProtected is Do for endpoints that need a session; without a local token it fails
// with ErrNotAuthenticated and sends nothing.
func (c *Client) DoProtected(ctx context.Context, method, path string, body, out interface{}) error {
	if !c.HasSession() {
		return ErrNotAuthenticated
	}
	return c.Do(ctx, method, path, body, out)
}

// Upload posts a single file as multipart form field `field`.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return errors.Wrap(err, "build upload")
	}
	if _, err := io.Copy(fw, content); err != nil {
		return errors.Wrap(err, "read upload")
	}
	if err := mw.Close(); err != nil {
		return errors.Wrap(err, "build upload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(SessionHeader, token)
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("request_id", requestID),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return errors.Wrap(ctxErr, req.Method+" "+req.URL.Path)
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", req.Method, req.URL.Path)
	}
	return nil
}
