package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/pkg/carrier"
	"github.com/tuanvumaihuynh/inventory-console/pkg/zerror"
)

var tracer = otel.Tracer("internal/apiclient")

// maxResponseBytes bounds how much of a backend response is buffered.
const maxResponseBytes = 32 << 20

// Client calls the inventory backend. A Client is safe for concurrent use;
// WithToken returns a copy bound to one session's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	token      string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(cfg config.Backend, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "apiclient")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Call sends body (when non-nil) as JSON to endpoint and decodes a JSON
// response into out (when non-nil).
//
// A non-2xx response fails with an API error carrying the server's message,
// a request that never completes fails with a transport error.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any) error {
	data, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		err = apperr.APIErr.WithMsg("invalid response from server").WrapParent(err)
		c.logFailure(ctx, method, endpoint, err)
		return err
	}

	return nil
}

// download fetches endpoint as raw bytes.
func (c *Client) download(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (_ []byte, err error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", method, endpoint),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("backend.endpoint", endpoint),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "backend call failed")
			c.logFailure(ctx, method, endpoint, err)
		}
		span.End()
	}()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	carrier.InjectHTTP(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.TransportErr.WithMsg(err.Error()).WrapParent(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperr.TransportErr.WithMsg(err.Error()).WrapParent(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

type messageBody struct {
	Message string `json:"message"`
}

func newAPIError(statusCode int, data []byte) zerror.ZError {
	msg := apperr.DefaultAPIErrMessage

	var body messageBody
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		msg = body.Message
	}

	return apperr.APIErr.
		WithMsg(msg).
		WithStatus(zerror.StatusFromHTTP(statusCode)).
		WrapParent(fmt.Errorf("backend responded with status %d", statusCode))
}

func (c *Client) logFailure(ctx context.Context, method, endpoint string, err error) {
	c.logger.WarnContext(ctx, "api call failed",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Any("error", err),
	)
}

// Message extracts the user facing message of an error returned by the client.
func Message(err error) string {
	if zErr, ok := zerror.As(err); ok {
		return zErr.Msg()
	}
	return err.Error()
}

// IsUnauthorized reports whether the backend rejected the bearer token.
func IsUnauthorized(err error) bool {
	zErr, ok := zerror.As(err)
	return ok && zErr.Code() == apperr.APIErrorCode && zErr.Status() == zerror.StatusUnauthorized
}
