package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pangate/internal/plugin/models"
)

// APIKeyHeader carries the plugin API key when no username/password pair is set.
const APIKeyHeader = "X-API-Key"

const maxResponseBytes = 64 << 10

// HTTPTransport posts JSON to one provider, authenticating with the plugin's
// credentials and retrying retryable failures with exponential backoff.
type HTTPTransport struct {
	provider       models.Provider
	baseURL        string
	client         *http.Client
	maxRetries     int
	initialBackoff time.Duration
	tracer         trace.Tracer
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient replaces the default client (tests use httptest clients).
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithMaxRetries bounds retries after the first attempt.
func WithMaxRetries(n int) TransportOption {
	return func(t *HTTPTransport) {
		if n >= 0 {
			t.maxRetries = n
		}
	}
}

// WithInitialBackoff sets the first retry delay.
func WithInitialBackoff(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.initialBackoff = d
		}
	}
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(tr trace.Tracer) TransportOption {
	return func(t *HTTPTransport) {
		if tr != nil {
			t.tracer = tr
		}
	}
}

// NewHTTPTransport builds a transport for provider rooted at baseURL.
func NewHTTPTransport(provider models.Provider, baseURL string, timeout time.Duration, opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		provider:       provider,
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         &http.Client{Timeout: timeout},
		maxRetries:     2,
		initialBackoff: 200 * time.Millisecond,
		tracer:         otel.Tracer("pangate/providers"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PostJSON sends in to path and decodes a 200 response into out.
func (t *HTTPTransport) PostJSON(ctx context.Context, plugin *models.Plugin, path string, in, out any) error {
	ctx, span := t.tracer.Start(ctx, "provider.post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider", string(t.provider)),
			attribute.String("http.route", path),
			attribute.String("plugin.uid", plugin.UID),
		),
	)
	defer span.End()

	body, err := json.Marshal(in)
	if err != nil {
		return t.fail(span, NewProviderError(ErrorInternal, string(t.provider), "encode request", err))
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = t.initialBackoff
	policy.MaxElapsedTime = 0

	attempts := 0
	op := func() error {
		attempts++
		err := t.do(ctx, plugin, path, body, out)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(t.maxRetries)), ctx))
	span.SetAttributes(attribute.Int("provider.attempts", attempts))
	if err != nil {
		var pe *ProviderError
		if !errors.As(err, &pe) {
			err = t.classifyTransportError(err)
		}
		return t.fail(span, err)
	}
	return nil
}

func (t *HTTPTransport) do(ctx context.Context, plugin *models.Plugin, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return NewProviderError(ErrorInternal, string(t.provider), "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	switch plugin.AuthMethod() {
	case models.AuthMethodBasic:
		req.SetBasicAuth(plugin.Username, plugin.Password)
	case models.AuthMethodAPIKey:
		req.Header.Set(APIKeyHeader, plugin.APIKey)
	default:
		return NewProviderError(ErrorAuthentication, string(t.provider), "plugin has no usable credentials", nil)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return t.classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return NewProviderError(ErrorProviderOutage, string(t.provider), "read response", err)
	}
	return DecodeResponse(string(t.provider), resp.StatusCode, raw, out)
}

// DecodeResponse maps a provider status to the error taxonomy and decodes a
// successful body into out.
func DecodeResponse(provider string, status int, body []byte, out any) error {
	switch {
	case status == http.StatusOK:
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, provider, fmt.Sprintf("credentials rejected (%d)", status), nil)
	case status == http.StatusNotFound:
		return NewProviderError(ErrorNotFound, provider, "record not found", nil)
	case status == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, provider, "rate limited", nil)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return NewProviderError(ErrorBadData, provider, fmt.Sprintf("request rejected (%d)", status), nil)
	case status >= 500:
		return NewProviderError(ErrorProviderOutage, provider, fmt.Sprintf("provider unavailable (%d)", status), nil)
	default:
		return NewProviderError(ErrorInternal, provider, fmt.Sprintf("unexpected status %d", status), nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewProviderError(ErrorBadData, provider, "malformed response", err)
	}
	return nil
}

func (t *HTTPTransport) classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewProviderError(ErrorTimeout, string(t.provider), "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		// Cancellation is the caller's decision; do not retry it.
		return NewProviderError(ErrorInternal, string(t.provider), "request canceled", err)
	}
	return NewProviderError(ErrorProviderOutage, string(t.provider), "request failed", err)
}

func (t *HTTPTransport) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(GetCategory(err)))
	return err
}
