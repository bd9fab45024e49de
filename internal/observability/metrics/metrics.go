package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	observationsRecorded metric.Int64Counter
	observationsRejected metric.Int64Counter
	chartRedraws         metric.Int64Counter
	reportsGenerated     metric.Int64Counter
	reportDuration       metric.Float64Histogram
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("shutting down meter provider")
				return provider.Shutdown(ctx)
			},
		})
	}

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)

	return provider, nil
}

// New configures the domain instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "agritatva"
	}
	meter := provider.Meter(name)

	observationsRecorded, err := meter.Int64Counter("agritatva_observations_recorded_total")
	if err != nil {
		return nil, err
	}
	observationsRejected, err := meter.Int64Counter("agritatva_observations_rejected_total")
	if err != nil {
		return nil, err
	}
	chartRedraws, err := meter.Int64Counter("agritatva_chart_redraws_total")
	if err != nil {
		return nil, err
	}
	reportsGenerated, err := meter.Int64Counter("agritatva_reports_generated_total")
	if err != nil {
		return nil, err
	}
	reportDuration, err := meter.Float64Histogram("agritatva_report_duration_seconds", metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		observationsRecorded: observationsRecorded,
		observationsRejected: observationsRejected,
		chartRedraws:         chartRedraws,
		reportsGenerated:     reportsGenerated,
		reportDuration:       reportDuration,
	}, nil
}

// RecordObservation counts an accepted observation.
func (m *Metrics) RecordObservation(ctx context.Context) {
	if m == nil {
		return
	}
	m.observationsRecorded.Add(ctx, 1)
}

// RecordRejectedObservation counts a rejected submission by reason.
func (m *Metrics) RecordRejectedObservation(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.observationsRejected.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordChartRedraw counts full chart reconstructions.
func (m *Metrics) RecordChartRedraw(ctx context.Context) {
	if m == nil {
		return
	}
	m.chartRedraws.Add(ctx, 1)
}

// RecordReport counts report generations and their latency.
func (m *Metrics) RecordReport(ctx context.Context, status string, elapsed time.Duration, shared bool) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("status", strings.TrimSpace(status)),
		attribute.Bool("shared", shared),
	)
	m.reportsGenerated.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.reportDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"reason": {},
	"status": {},
	"shared": {},
	"format": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
