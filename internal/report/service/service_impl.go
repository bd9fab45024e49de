package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/clock"
	"github.com/smallbiznis/agritatva/internal/config"
	"github.com/smallbiznis/agritatva/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/agritatva/internal/observability/metrics"
	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/providers/pdf"
	reportdomain "github.com/smallbiznis/agritatva/internal/report/domain"
	"github.com/smallbiznis/agritatva/internal/session"
	"github.com/smallbiznis/agritatva/internal/statistics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const notAvailable = "n/a"

type Params struct {
	fx.In

	Session  *session.Session
	Log      *zap.Logger
	Clock    clock.Clock
	Config   *config.ReportConfigHolder
	Renderer *chart.Renderer
	PDF      pdf.Provider
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	session  *session.Session
	log      *zap.Logger
	clock    clock.Clock
	config   *config.ReportConfigHolder
	renderer *chart.Renderer
	pdf      pdf.Provider
	metrics  *obsmetrics.Metrics

	group singleflight.Group
}

func NewService(p Params) reportdomain.Service {
	return &Service{
		session:  p.Session,
		log:      p.Log.Named("report.service"),
		clock:    p.Clock,
		config:   p.Config,
		renderer: p.Renderer,
		pdf:      p.PDF,
		metrics:  p.Metrics,
	}
}

// Generate renders the current session into a PDF. Calls that overlap an
// in-flight generation share its result instead of starting another one.
// The shared work is detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (s *Service) Generate(ctx context.Context) (*reportdomain.Report, error) {
	ctx, span := otel.Tracer("agritatva/report").Start(ctx, "report.generate")
	defer span.End()

	start := time.Now()
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan("report", func() (interface{}, error) {
		return s.generate(detached)
	})

	log := logger.WithContext(ctx, s.log)

	var res singleflight.Result
	select {
	case <-ctx.Done():
		s.metrics.RecordReport(ctx, "canceled", time.Since(start), false)
		log.Info("report request canceled", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	case res = <-ch:
	}
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Bool("report.shared", res.Shared))

	if res.Err != nil {
		s.metrics.RecordReport(ctx, "error", elapsed, res.Shared)
		log.Error("report generation failed", zap.Error(res.Err), zap.Bool("shared", res.Shared))
		return nil, res.Err
	}

	report := res.Val.(*reportdomain.Report)
	s.metrics.RecordReport(ctx, "ok", elapsed, res.Shared)
	log.Info("report generated",
		zap.Int("bytes", len(report.Content)),
		zap.Bool("shared", res.Shared),
		zap.Duration("elapsed", elapsed),
	)
	return report, nil
}

func (s *Service) generate(ctx context.Context) (*reportdomain.Report, error) {
	cfg := s.config.Get()
	snap := s.session.Snapshot()

	doc := BuildDocument(cfg, snap.Observations, s.clock.Now())
	doc.SessionID = snap.SessionID

	if cfg.IncludeChart && !snap.Chart.Empty() {
		var buf bytes.Buffer
		if err := s.renderer.Render(snap.Chart, chart.FormatPNG, &buf); err != nil && !errors.Is(err, chart.ErrEmptyChart) {
			return nil, fmt.Errorf("render report chart: %w", err)
		}
		doc.ChartPNG = buf.Bytes()
	}

	r, err := s.pdf.GenerateReport(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("generate report pdf: %w", err)
	}
	if r == nil {
		return nil, reportdomain.ErrReportRender
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report pdf: %w", err)
	}

	return &reportdomain.Report{
		FileName:    cfg.FileName,
		ContentType: reportdomain.ContentTypePDF,
		Content:     content,
	}, nil
}

// BuildDocument lays out the report content for a snapshot of observations.
func BuildDocument(cfg config.ReportConfig, observations []domain.FieldObservation, now time.Time) reportdomain.Document {
	rows := make([]reportdomain.Row, len(observations))
	for i, obs := range observations {
		rows[i] = reportdomain.Row{
			FieldName:  obs.FieldName,
			WaterUsage: formatNumber(obs.WaterUsage),
			Rainfall:   formatNumber(obs.Rainfall),
		}
	}

	tips := make([]string, len(cfg.Tips))
	copy(tips, cfg.Tips)

	return reportdomain.Document{
		Title:       cfg.Title,
		GeneratedAt: now,
		Header:      reportdomain.Header,
		Rows:        rows,
		Statistics:  statisticsBlock(statistics.Calculate(observations)),
		TipsHeading: cfg.TipsHeading,
		Tips:        tips,
	}
}

func statisticsBlock(summary statistics.Summary) reportdomain.StatisticsBlock {
	block := reportdomain.StatisticsBlock{TotalFields: strconv.Itoa(summary.Count)}
	if summary.Empty() {
		block.MeanWater = notAvailable
		block.MaxWater = notAvailable
		block.MinWater = notAvailable
		return block
	}
	block.MeanWater = strconv.FormatFloat(summary.Mean, 'f', 2, 64)
	block.MaxWater = formatNumber(summary.Max)
	block.MinWater = formatNumber(summary.Min)
	return block
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
