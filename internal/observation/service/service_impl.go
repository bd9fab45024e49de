package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/agritatva/internal/clock"
	"github.com/smallbiznis/agritatva/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/agritatva/internal/observability/metrics"
	"github.com/smallbiznis/agritatva/internal/observability/tracing"
	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/session"
	"github.com/smallbiznis/agritatva/internal/statistics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Session *session.Session
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	session *session.Session
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		session: p.Session,
		log:     p.Log.Named("observation.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
}

func (s *Service) Record(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	ctx, span := otel.Tracer("agritatva/observation").Start(ctx, "observation.record")
	defer span.End()

	obs, err := parseRequest(req)
	if err != nil {
		s.metrics.RecordRejectedObservation(ctx, err.Error())
		span.SetStatus(codes.Error, tracing.SafeError(err).Error())
		return nil, err
	}

	obs.ID = s.genID.Generate()
	obs.RecordedAt = s.clock.Now()

	idx, generation := s.session.Submit(obs)
	s.metrics.RecordObservation(ctx)
	s.metrics.RecordChartRedraw(ctx)

	span.SetAttributes(tracing.SafeAttributes(
		attribute.Int("observation.index", idx),
		attribute.Int64("chart.generation", int64(generation)),
		attribute.String("field_name", obs.FieldName),
	)...)

	logger.WithContext(ctx, s.log).Info("observation recorded",
		zap.String("observation_id", obs.ID.String()),
		zap.Int("index", idx),
		zap.Uint64("chart_generation", generation),
	)

	resp := toResponse(idx, obs)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	observations := s.session.Observations()
	out := make([]domain.Response, len(observations))
	for i, obs := range observations {
		out[i] = toResponse(i, obs)
	}
	return out, nil
}

func (s *Service) Statistics(ctx context.Context) (domain.StatisticsResponse, error) {
	summary := statistics.Calculate(s.session.Observations())
	return domain.StatisticsResponse{
		Count:    summary.Count,
		Mean:     summary.Mean,
		Variance: summary.Variance,
		StdDev:   summary.StdDev,
		Max:      summary.Max,
		Min:      summary.Min,
		HasData:  !summary.Empty(),
	}, nil
}

func parseRequest(req domain.CreateRequest) (domain.FieldObservation, error) {
	name := strings.TrimSpace(req.FieldName)
	if name == "" {
		return domain.FieldObservation{}, domain.ErrInvalidFieldName
	}

	water, ok := parseMeasurement(req.WaterUsage)
	if !ok {
		return domain.FieldObservation{}, domain.ErrInvalidWaterUsage
	}

	rainfall, ok := parseMeasurement(req.Rainfall)
	if !ok {
		return domain.FieldObservation{}, domain.ErrInvalidRainfall
	}

	return domain.FieldObservation{
		FieldName:  name,
		WaterUsage: water,
		Rainfall:   rainfall,
	}, nil
}

// parseMeasurement accepts finite decimals in [0, MaxMeasurement].
func parseMeasurement(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > domain.MaxMeasurement {
		return 0, false
	}
	if v == 0 {
		// "-0" parses to negative zero
		v = 0
	}
	return v, true
}

func toResponse(idx int, obs domain.FieldObservation) domain.Response {
	return domain.Response{
		ID:         obs.ID.String(),
		Index:      idx,
		FieldName:  obs.FieldName,
		WaterUsage: obs.WaterUsage,
		Rainfall:   obs.Rainfall,
		RecordedAt: obs.RecordedAt,
	}
}
