// Package gateway is the single client every backend call of the console goes through. It
// resolves the tenant's API host, attaches the stored bearer token, turns failures into
// *APIError values and enforces the forced re-login on 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/billing-console/browser"
	"github.com/jrsteele09/billing-console/internal/utils"
	"github.com/jrsteele09/billing-console/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// LoginPath is where the operator is sent when the backend rejects their credentials.
const LoginPath = "/login"

// RequestOptions are the optional parts of a call.
type RequestOptions struct {
	Method string // defaults to GET
	// Body is JSON encoded; []byte and json.RawMessage are sent as-is.
	Body any
	// Headers override the defaults, including Content-Type and Authorization.
	Headers map[string]string
	// Anonymous calls do not carry the stored token. Without a session there is nothing to
	// expire, so a 401 on an anonymous call leaves storage and location alone.
	Anonymous bool
}

type Client struct {
	httpClient *http.Client
	store      storage.Store
	resolver   BaseURLResolver
	logger     zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(store storage.Store, resolver BaseURLResolver, options ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("[gateway New] store is required")
	}
	if resolver == nil {
		return nil, errors.New("[gateway New] resolver is required")
	}
	c := &Client{
		httpClient: &http.Client{},
		store:      store,
		resolver:   resolver,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Get is Do with the default options.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, endpoint, nil, out)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	return c.Do(ctx, endpoint, &RequestOptions{Method: http.MethodPost, Body: body}, out)
}

// Do performs one attempt of the call and decodes a successful JSON body into out (nil
// discards it). Every failure is returned as *APIError, except a success body that does not
// decode into out.
func (c *Client) Do(ctx context.Context, endpoint string, opts *RequestOptions, out any) error {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return fmt.Errorf("[gateway Do] encode %s body: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolver.Resolve(ctx)+endpoint, body)
	if err != nil {
		return networkError(err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if !opts.Anonymous {
		if token := c.accessToken(ctx); token != "" {
			(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("request_id", requestID).Str("method", method).Str("endpoint", endpoint).Msg("gateway request failed")
		return networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}
	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp, data)
		if resp.StatusCode == http.StatusUnauthorized && !opts.Anonymous {
			c.expireSession(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("[gateway Do] decode %s response: %w", endpoint, err)
	}
	return nil
}

// expireSession clears the stored access token and user and sends the window to the login
// page. The refresh token is left in storage. Outside a browser context nothing happens.
func (c *Client) expireSession(ctx context.Context) {
	w, ok := browser.FromContext(ctx)
	if !ok {
		return
	}
	if err := c.store.Remove(context.WithoutCancel(ctx), storage.KeyAccessToken, storage.KeyUser); err != nil {
		c.logger.Err(err).Msg("gateway: failed to clear credentials after 401")
	}
	c.logger.Info().Msg("gateway: session rejected by backend, redirecting to login")
	w.Location.Assign(LoginPath)
}

func (c *Client) accessToken(ctx context.Context) string {
	token, ok, err := c.store.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		c.logger.Err(err).Msg("gateway: failed to read access token")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

func statusError(resp *http.Response, data []byte) *APIError {
	var payload any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			payload = nil
		}
	}
	apiErr := &APIError{
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp)),
		Status:  utils.Ptr(resp.StatusCode),
		Payload: payload,
	}
	if msg, ok := apiErr.PayloadMessage(); ok {
		apiErr.Message = msg
	}
	return apiErr
}

// statusText is the reason phrase of resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
