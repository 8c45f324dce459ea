// Package telemetry bootstraps OpenTelemetry trace and log export over
// OTLP/HTTP. When disabled, the global no-op providers stay in place.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amp-labs/rbtset/envutil"
	"github.com/amp-labs/rbtset/logger"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/amp-labs/rbtset"
	defaultTimeout      = 5 * time.Second
)

var (
	providerMu     sync.Mutex             //nolint:gochecknoglobals
	loggerProvider *sdklog.LoggerProvider //nolint:gochecknoglobals
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName string
	Endpoint    string
	Enabled     bool
	Timeout     time.Duration
}

// LoadConfigFromEnv reads OTEL_ENABLED, OTEL_SERVICE_NAME,
// OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_TIMEOUT.
// The service name defaults to the logging subsystem.
func LoadConfigFromEnv() (*Config, error) {
	enabled, err := envutil.Bool("OTEL_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	svcName, err := envutil.String("OTEL_SERVICE_NAME",
		envutil.Default(logger.GetSubsystem(context.Background()))).
		Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", envutil.Default("")).Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envutil.Duration("OTEL_EXPORTER_OTLP_TIMEOUT", envutil.Default(defaultTimeout)).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName: svcName,
		Endpoint:    endpoint,
		Enabled:     enabled,
		Timeout:     timeout,
	}, nil
}

func noopShutdown(context.Context) error { return nil }

// Initialize installs global OTLP/HTTP tracer and logger providers. The
// returned function flushes and shuts both down; it is safe to call when
// telemetry is disabled.
func Initialize(ctx context.Context, config *Config) (func(context.Context) error, error) {
	if config == nil || !config.Enabled {
		slog.Debug("OpenTelemetry export is disabled")

		return noopShutdown, nil
	}

	if config.Endpoint == "" {
		slog.Warn("OpenTelemetry endpoint not configured, export will be disabled")

		return noopShutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", config.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	logExporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(config.Endpoint),
		otlploghttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	logProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	global.SetLoggerProvider(logProvider)

	providerMu.Lock()
	loggerProvider = logProvider
	providerMu.Unlock()

	slog.Info("OpenTelemetry export initialized",
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	)

	return func(ctx context.Context) error {
		providerMu.Lock()
		loggerProvider = nil
		providerMu.Unlock()

		return errors.Join(tracerProvider.Shutdown(ctx), logProvider.Shutdown(ctx))
	}, nil
}

// LogHandler returns a slog handler that exports records through the
// installed logger provider, or the global one if Initialize was not called.
func LogHandler(name string) slog.Handler {
	providerMu.Lock()
	defer providerMu.Unlock()

	if loggerProvider != nil {
		return otelslog.NewHandler(name, otelslog.WithLoggerProvider(loggerProvider))
	}

	return otelslog.NewHandler(name)
}

// Tracer returns the tracer used for rbtset spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
