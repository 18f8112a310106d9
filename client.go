package authlane

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/authlane/authlane-go/instrumentation"
	"github.com/authlane/authlane-go/internal/util"
)

// Backend endpoint paths. Fixed by the backend's API contract.
const (
	authorizationPath = "/auth/authorization"
	issuePath         = "/auth/authorization/issue"
	failPath          = "/auth/authorization/fail"
)

// ticketLogLength is how many leading characters of a ticket appear in
// logs. Tickets are correlation secrets and must never be logged whole.
const ticketLogLength = 8

// Client calls the backend's authorization API. It is safe for concurrent
// use.
type Client struct {
	config     *Config
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	tracer     trace.Tracer
	metrics    *instrumentation.Metrics
}

// NewClient creates a client for the backend API described by config.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("authlane: config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := config.applyDefaults()

	c := &Client{
		config:     cfg,
		baseURL:    util.NormalizeBaseURL(cfg.BaseURL),
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		tracer:     cfg.Instrumentation.Tracer("client"),
		metrics:    cfg.Instrumentation.Metrics(),
	}
	if cfg.RateLimit.Rate > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Rate), cfg.RateLimit.Burst)
	}

	return c, nil
}

// Authorize submits the client application's authorization request to the
// backend and returns its decision document. The caller must then act on
// the response's Action; see AuthorizationResponse.
func (c *Client) Authorize(ctx context.Context, req *AuthorizationRequest) (*AuthorizationResponse, error) {
	if req == nil || req.Parameters == "" {
		return nil, fmt.Errorf("authlane: authorization request parameters are required")
	}

	var resp AuthorizationResponse
	if err := c.call(ctx, "authorization", authorizationPath, req, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("authorization decision received",
		"action", resp.Action,
		"ticket", util.SafeTruncate(resp.Ticket, ticketLogLength),
	)
	return &resp, nil
}

// Issue exchanges a ticket for the authorization code, ID token and/or
// access token the backend mints for the authenticated end-user.
func (c *Client) Issue(ctx context.Context, req *AuthorizationIssueRequest) (*AuthorizationIssueResponse, error) {
	if req == nil || req.Ticket == "" {
		return nil, fmt.Errorf("authlane: issue request ticket is required")
	}
	if req.Subject == "" {
		return nil, fmt.Errorf("authlane: issue request subject is required")
	}

	var resp AuthorizationIssueResponse
	if err := c.call(ctx, "issue", issuePath, req, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("authorization issued",
		"action", resp.Action,
		"ticket", util.SafeTruncate(req.Ticket, ticketLogLength),
	)
	return &resp, nil
}

// Fail reports that the authorization request tied to a ticket cannot be
// honored and returns the error response the backend built for the client
// application.
func (c *Client) Fail(ctx context.Context, req *AuthorizationFailRequest) (*AuthorizationFailResponse, error) {
	if req == nil || req.Ticket == "" {
		return nil, fmt.Errorf("authlane: fail request ticket is required")
	}
	if req.Reason == "" {
		req = &AuthorizationFailRequest{Ticket: req.Ticket, Reason: FailReasonUnknown}
	}

	var resp AuthorizationFailResponse
	if err := c.call(ctx, "fail", failPath, req, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("authorization failed",
		"action", resp.Action,
		"reason", req.Reason,
		"ticket", util.SafeTruncate(req.Ticket, ticketLogLength),
	)
	return &resp, nil
}

// call performs one JSON POST to the backend, with rate limiting, retries
// and telemetry. out is decoded from 2xx bodies; non-2xx bodies produce an
// *APIError carrying the backend's result envelope when present.
func (c *Client) call(ctx context.Context, endpoint, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("authlane: rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("authlane: failed to encode request: %w", err)
	}

	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "authlane."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String(instrumentation.AttrEndpoint, endpoint)),
	)
	defer span.End()

	start := time.Now()
	var lastStatus int
	attempt := 0

	err = retry.Do(
		func() error {
			attempt++
			status, doErr := c.doRequest(ctx, path, requestID, body, out)
			lastStatus = status
			return doErr
		},
		retry.Context(ctx),
		retry.Attempts(c.config.Retry.Attempts),
		retry.Delay(c.config.Retry.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying backend API call",
				"endpoint", endpoint,
				"attempt", n+1,
				"request_id", requestID,
				"error", err,
			)
		}),
	)

	elapsed := time.Since(start)
	c.metrics.RecordAPICall(ctx, endpoint, lastStatus, elapsed, err)
	span.SetAttributes(
		attribute.Int(instrumentation.AttrStatusCode, lastStatus),
		attribute.Int(instrumentation.AttrAttempt, attempt),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return err
	}
	if action := decodedAction(out); action != "" {
		span.SetAttributes(attribute.String(instrumentation.AttrAction, string(action)))
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// decodedAction extracts the backend's action from a decoded response for
// telemetry.
func decodedAction(out any) Action {
	switch v := out.(type) {
	case *AuthorizationResponse:
		return v.Action
	case *AuthorizationIssueResponse:
		return v.Action
	case *AuthorizationFailResponse:
		return v.Action
	}
	return ""
}

// doRequest performs a single HTTP exchange. It returns the HTTP status
// (0 when the exchange never completed) alongside the error.
func (c *Client) doRequest(ctx context.Context, path, requestID string, body []byte, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("authlane: failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-Id", requestID)

	if err := c.authenticate(req); err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("authlane: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("authlane: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope Result
		if json.Unmarshal(respBody, &envelope) == nil {
			apiErr.Code = envelope.ResultCode
			apiErr.Message = envelope.ResultMessage
		}
		return resp.StatusCode, apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("authlane: failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// authenticate attaches the configured credentials to a request. Bearer
// tokens win over basic auth when both are configured.
func (c *Client) authenticate(req *http.Request) error {
	if ts := c.config.TokenSource; ts != nil {
		token, err := ts.Token()
		if err != nil {
			return fmt.Errorf("authlane: failed to obtain API token: %w", err)
		}
		token.SetAuthHeader(req)
		return nil
	}
	req.SetBasicAuth(c.config.APIKey, c.config.APISecret)
	return nil
}

// retryable reports whether an API call error is worth retrying: transport
// failures and 5xx answers are, anything the backend rejected outright is
// not.
func retryable(err error) bool {
	if apiErr := AsAPIError(err); apiErr != nil {
		return apiErr.Temporary()
	}
	// Transport-level failure; the request may never have reached the
	// backend.
	return true
}
