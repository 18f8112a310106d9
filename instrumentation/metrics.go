package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys used on metrics and spans.
//
// Never attach credential values (API secrets, tickets, subjects) to
// telemetry. Tickets are correlation secrets: record their presence or a
// truncated prefix, not the full value.
const (
	// API call attributes
	AttrEndpoint   = "authlane.endpoint"    // authorization, issue, fail
	AttrStatusCode = "authlane.status_code" // HTTP status from the backend
	AttrAction     = "authlane.action"      // decoded action, when available
	AttrAttempt    = "authlane.attempt"     // 1-based retry attempt

	// Storage attributes
	AttrStorageBackend   = "authlane.storage.backend" // memory, valkey
	AttrStorageOperation = "authlane.storage.operation"
	AttrStorageResult    = "authlane.storage.result" // ok, miss, error
)

// Metrics holds the metric instruments the library records into.
type Metrics struct {
	// APICallsTotal counts backend API calls by endpoint and status.
	APICallsTotal metric.Int64Counter

	// APICallDuration measures backend API call latency in milliseconds,
	// including retries.
	APICallDuration metric.Float64Histogram

	// APICallErrors counts failed backend API calls by endpoint.
	APICallErrors metric.Int64Counter

	// StorageOperationsTotal counts ticket store operations by backend,
	// operation and result.
	StorageOperationsTotal metric.Int64Counter

	// StorageOperationDuration measures ticket store operation latency in
	// milliseconds.
	StorageOperationDuration metric.Float64Histogram
}

func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	var err error

	clientMeter := inst.Meter("client")
	storageMeter := inst.Meter("storage")

	m.APICallsTotal, err = clientMeter.Int64Counter(
		"authlane.api.calls.total",
		metric.WithDescription("Total number of backend API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api.calls.total counter: %w", err)
	}

	m.APICallDuration, err = clientMeter.Float64Histogram(
		"authlane.api.call.duration",
		metric.WithDescription("Backend API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api.call.duration histogram: %w", err)
	}

	m.APICallErrors, err = clientMeter.Int64Counter(
		"authlane.api.call.errors",
		metric.WithDescription("Number of failed backend API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api.call.errors counter: %w", err)
	}

	m.StorageOperationsTotal, err = storageMeter.Int64Counter(
		"authlane.storage.operations.total",
		metric.WithDescription("Total number of ticket store operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage.operations.total counter: %w", err)
	}

	m.StorageOperationDuration, err = storageMeter.Float64Histogram(
		"authlane.storage.operation.duration",
		metric.WithDescription("Ticket store operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage.operation.duration histogram: %w", err)
	}

	return m, nil
}

// RecordAPICall records one completed backend API call.
func (m *Metrics) RecordAPICall(ctx context.Context, endpoint string, status int, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String(AttrEndpoint, endpoint),
		attribute.Int(AttrStatusCode, status),
	)
	m.APICallsTotal.Add(ctx, 1, attrs)
	m.APICallDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	if err != nil {
		m.APICallErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String(AttrEndpoint, endpoint),
		))
	}
}

// RecordStorageOperation records one ticket store operation.
func (m *Metrics) RecordStorageOperation(ctx context.Context, backend, operation, result string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrStorageBackend, backend),
		attribute.String(AttrStorageOperation, operation),
		attribute.String(AttrStorageResult, result),
	)
	m.StorageOperationsTotal.Add(ctx, 1, attrs)
	m.StorageOperationDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}
