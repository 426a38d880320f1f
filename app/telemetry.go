package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	PrometheusEnabled bool
	SampleRate        float64
}

// Telemetry manages OpenTelemetry tracing and metrics providers
type Telemetry struct {
	config       TelemetryConfig
	shutdownFunc []func(context.Context) error
}

// InitTelemetry installs global OpenTelemetry providers. A disabled config
// leaves the no-op globals in place.
func InitTelemetry(cfg TelemetryConfig) (*Telemetry, error) {
	tel := &Telemetry{config: cfg}
	if !cfg.Enabled {
		return tel, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(Name),
			attribute.String("chain.id", ChainID),
		),
	)
	if err != nil {
		return nil, err
	}

	if cfg.OTLPEndpoint != "" {
		if err := tel.initTracing(res); err != nil {
			return nil, err
		}
	}
	if cfg.PrometheusEnabled {
		if err := tel.initMetrics(res); err != nil {
			return nil, err
		}
	}
	return tel, nil
}

// initTracing sets up OTLP/HTTP tracing
func (t *Telemetry) initTracing(res *resource.Resource) error {
	if _, err := url.Parse(t.config.OTLPEndpoint); err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}

	endpoint := strings.TrimPrefix(t.config.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(
			trace.TraceIDRatioBased(t.config.SampleRate),
		)),
	)

	otel.SetTracerProvider(tp)
	t.shutdownFunc = append(t.shutdownFunc, tp.Shutdown)
	return nil
}

// initMetrics exports OpenTelemetry instruments through the Prometheus registry
func (t *Telemetry) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return err
	}

	provider := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)
	t.shutdownFunc = append(t.shutdownFunc, provider.Shutdown)
	return nil
}

// Shutdown flushes and stops the installed providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	for _, fn := range t.shutdownFunc {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// execTelemetry traces and meters App.Exec calls through the global providers.
type execTelemetry struct {
	tracer       oteltrace.Tracer
	execCounter  metric.Int64Counter
	execDuration metric.Float64Histogram
}

func newExecTelemetry() (*execTelemetry, error) {
	meter := otel.Meter(Name)

	execCounter, err := meter.Int64Counter(
		"pawswap.exec.total",
		metric.WithDescription("Total number of executed state transitions"),
		metric.WithUnit("{exec}"),
	)
	if err != nil {
		return nil, err
	}

	execDuration, err := meter.Float64Histogram(
		"pawswap.exec.processing_time",
		metric.WithDescription("State transition processing time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &execTelemetry{
		tracer:       otel.Tracer(Name),
		execCounter:  execCounter,
		execDuration: execDuration,
	}, nil
}

func (t *execTelemetry) record(ctx context.Context, name string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}

	attrs := metric.WithAttributes(
		attribute.String("exec.name", name),
		attribute.String("exec.status", status),
	)
	t.execCounter.Add(ctx, 1, attrs)
	t.execDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}
