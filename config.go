package authlane

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/authlane/authlane-go/instrumentation"
)

// Default client behavior applied by Config.applyDefaults.
const (
	// DefaultHTTPTimeout bounds a single HTTP exchange with the backend.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryAttempts is the total number of tries per API call.
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the delay before the first retry; subsequent
	// retries back off exponentially.
	DefaultRetryDelay = 100 * time.Millisecond
)

// Config holds the API client configuration. BaseURL plus one credential
// form is required; everything else has working defaults.
type Config struct {
	// BaseURL is the backend API base URL, e.g. "https://api.authlane.example".
	BaseURL string

	// APIKey and APISecret authenticate the service to the backend via
	// HTTP basic auth. Ignored when TokenSource is set.
	APIKey    string
	APISecret string

	// TokenSource supplies bearer tokens for the backend API instead of
	// basic auth. A clientcredentials.Config.TokenSource works directly.
	TokenSource oauth2.TokenSource

	// UserAgent overrides the User-Agent header sent to the backend.
	UserAgent string

	// HTTPClient is a custom HTTP client for backend requests. If not
	// provided, a client with DefaultHTTPTimeout is used.
	HTTPClient *http.Client

	// Logger for structured logging (optional, slog.Default if nil).
	Logger *slog.Logger

	// RateLimit bounds outbound calls to the backend.
	RateLimit RateLimitConfig

	// Retry controls retries of failed calls.
	Retry RetryConfig

	// Instrumentation enables OpenTelemetry metrics and traces for API
	// calls. Nil means no telemetry.
	Instrumentation *instrumentation.Instrumentation
}

// RateLimitConfig holds client-side rate limiting configuration.
type RateLimitConfig struct {
	// Rate is the allowed calls per second to the backend. Zero disables
	// limiting.
	Rate float64

	// Burst is the maximum burst size. Defaults to max(1, Rate) when
	// limiting is on.
	Burst int
}

// RetryConfig holds retry configuration for backend API calls. Only
// transport errors and 5xx responses are retried; a 4xx answer is final.
type RetryConfig struct {
	// Attempts is the total number of tries per call, first try included.
	// Zero means DefaultRetryAttempts; 1 disables retries.
	Attempts uint

	// Delay before the first retry; doubles each further retry.
	// Zero means DefaultRetryDelay.
	Delay time.Duration
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("authlane: BaseURL is required")
	}
	if c.TokenSource == nil && (c.APIKey == "" || c.APISecret == "") {
		return fmt.Errorf("authlane: either TokenSource or APIKey/APISecret is required")
	}
	if c.RateLimit.Rate < 0 {
		return fmt.Errorf("authlane: RateLimit.Rate must not be negative")
	}
	return nil
}

// applyDefaults returns a copy with zero values replaced by defaults.
func (c *Config) applyDefaults() *Config {
	out := *c

	if out.HTTPClient == nil {
		out.HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.UserAgent == "" {
		out.UserAgent = "authlane-go"
	}
	if out.Retry.Attempts == 0 {
		out.Retry.Attempts = DefaultRetryAttempts
	}
	if out.Retry.Delay == 0 {
		out.Retry.Delay = DefaultRetryDelay
	}
	if out.RateLimit.Rate > 0 && out.RateLimit.Burst < 1 {
		out.RateLimit.Burst = int(out.RateLimit.Rate)
		if out.RateLimit.Burst < 1 {
			out.RateLimit.Burst = 1
		}
	}
	if out.Instrumentation == nil {
		out.Instrumentation = instrumentation.Disabled()
	}

	return &out
}
