package instrumentation

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceVersion is used when the configuration names no version.
const DefaultServiceVersion = "unknown"

// instrumentationScope prefixes the meter and tracer names.
const instrumentationScope = "github.com/authlane/authlane-go"

// Config holds instrumentation configuration.
type Config struct {
	// ServiceName identifies the consuming service in telemetry.
	ServiceName string

	// ServiceVersion is the version of the consuming service.
	ServiceVersion string

	// Enabled controls whether instrumentation is active. When false,
	// no-op providers are used regardless of the fields below.
	Enabled bool

	// MeterProvider supplies meters. Nil falls back to a no-op provider;
	// wire an SDK provider with a real reader to export metrics.
	MeterProvider metric.MeterProvider

	// TracerProvider supplies tracers. Nil falls back to a no-op provider.
	TracerProvider trace.TracerProvider

	// Resource overrides the default resource attributes.
	Resource *resource.Resource
}

// Instrumentation bundles the OpenTelemetry components the library records
// telemetry through.
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics

	shutdownFuncs []func(context.Context) error
	shutdownOnce  sync.Once
}

// New creates a new instrumentation instance. It never returns a nil
// *Instrumentation on success, so callers can use it unconditionally.
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = "authlane"
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = DefaultServiceVersion
	}

	res := config.Resource
	if res == nil {
		var err error
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:   config,
		resource: res,
	}

	if config.Enabled && config.MeterProvider != nil {
		inst.meterProvider = config.MeterProvider
	} else {
		inst.meterProvider = noop.NewMeterProvider()
	}
	if config.Enabled && config.TracerProvider != nil {
		inst.tracerProvider = config.TracerProvider
	} else {
		inst.tracerProvider = tracenoop.NewTracerProvider()
	}

	var err error
	inst.metrics, err = newMetrics(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return inst, nil
}

// Disabled returns an instrumentation instance backed entirely by no-op
// providers. It cannot fail, which keeps call sites simple.
func Disabled() *Instrumentation {
	inst, err := New(Config{Enabled: false, Resource: resource.Empty()})
	if err != nil {
		// Unreachable: resource creation is skipped and all providers
		// are no-ops.
		panic(fmt.Sprintf("instrumentation: disabled instance: %v", err))
	}
	return inst
}

// Meter returns a named meter for the given scope (e.g. "client",
// "storage").
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter(instrumentationScope + "/" + scope)
}

// Tracer returns a named tracer for the given scope.
func (i *Instrumentation) Tracer(scope string) trace.Tracer {
	return i.tracerProvider.Tracer(instrumentationScope + "/" + scope)
}

// Metrics returns the instrument holder for recording metric values.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// MeterProvider returns the underlying meter provider.
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}

// TracerProvider returns the underlying tracer provider.
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}

// OnShutdown registers a function to run during Shutdown. Not safe to call
// after the instance is in use.
func (i *Instrumentation) OnShutdown(fn func(context.Context) error) {
	i.shutdownFuncs = append(i.shutdownFuncs, fn)
}

// Shutdown runs the registered shutdown functions once. The first error is
// returned but all functions run.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var shutdownErr error

	i.shutdownOnce.Do(func() {
		for _, fn := range i.shutdownFuncs {
			if err := fn(ctx); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
	})

	return shutdownErr
}
