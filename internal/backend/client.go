package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mcoot/gamehub/internal/backend"

// maxResponseBytes caps how much of a backend response body is read
const maxResponseBytes = 1 << 20

// ErrResponseTooLarge is returned when a backend response exceeds maxResponseBytes
var ErrResponseTooLarge = errors.New("backend response too large")

// ErrCrossHostRedirect is returned when the backend redirects to another host.
// Following it would carry the visitor's session elsewhere.
var ErrCrossHostRedirect = errors.New("backend redirected to another host")

// Client is a JSON-over-HTTP client for the external auth and catalog services.
// Credentials travel as cookies through the client's cookie jar.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient creates a client for the given base URL.
// Every request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tracer:  otel.Tracer(tracerName),
	}
	c.httpClient = &http.Client{
		Timeout:       timeout,
		CheckRedirect: sameHostRedirects(c.BaseURL().Host),
	}
	return c
}

func sameHostRedirects(host string) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if !strings.EqualFold(req.URL.Host, host) {
			return ErrCrossHostRedirect
		}
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		return nil
	}
}

// WithJar returns a copy of the client that sends and stores cookies in jar,
// for the backend host only. The copy shares the underlying transport.
func (c *Client) WithJar(jar http.CookieJar) *Client {
	hc := *c.httpClient
	hc.Jar = scopeJar(jar, c.BaseURL())
	return &Client{
		baseURL:    c.baseURL,
		httpClient: &hc,
		tracer:     c.tracer,
	}
}

// BaseURL returns the parsed base URL, used to scope cookie jars
func (c *Client) BaseURL() *url.URL {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// StatusError is a non-success response from the backend
type StatusError struct {
	Status int
	// Message is the "message" field of the JSON error body, if any
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// errorBody is the error shape returned by the backend
type errorBody struct {
	Message string `json:"message"`
}

// Do performs a request against path, encoding body as JSON and decoding
// a successful response into result
func (c *Client) Do(ctx context.Context, method, path string, body, result any) (err error) {
	ctx, span := c.tracer.Start(ctx, "backend "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		return ErrResponseTooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Status: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil {
			statusErr.Message = eb.Message
		}
		return statusErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}
