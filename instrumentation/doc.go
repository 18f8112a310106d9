// Package instrumentation provides OpenTelemetry instrumentation for the
// authlane-go library: metrics and traces for backend API calls and ticket
// storage operations.
//
// Instrumentation is optional. When disabled (or when no providers are
// supplied), no-op providers are used and the overhead is negligible.
//
// Basic usage:
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-service",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//		MeterProvider:  meterProvider,  // e.g. an SDK provider with an OTLP reader
//		TracerProvider: tracerProvider,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
// The instance is then passed through authlane.Config or the storage
// backend constructors.
package instrumentation
