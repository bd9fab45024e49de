package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/clock"
	"github.com/smallbiznis/agritatva/internal/config"
	"github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/observation/store"
	"github.com/smallbiznis/agritatva/internal/providers/pdf"
	reportdomain "github.com/smallbiznis/agritatva/internal/report/domain"
	"github.com/smallbiznis/agritatva/internal/session"
	"github.com/smallbiznis/agritatva/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC)

type pdfMock struct {
	mock.Mock
}

func (m *pdfMock) GenerateReport(ctx context.Context, doc reportdomain.Document) (io.Reader, error) {
	args := m.Called(ctx, doc)
	r, _ := args.Get(0).(io.Reader)
	return r, args.Error(1)
}

func newSession(obs ...domain.FieldObservation) *session.Session {
	s := session.New(store.NewMemory(), chart.NewCanvas(), testNow)
	for _, o := range obs {
		s.Submit(o)
	}
	return s
}

func newTestService(sess *session.Session, provider pdf.Provider, cfg config.ReportConfig) reportdomain.Service {
	return NewService(Params{
		Session:  sess,
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(testNow),
		Config:   config.NewStaticReportConfigHolder(cfg),
		Renderer: chart.NewRendererWithSize(400, 200),
		PDF:      provider,
	})
}

func TestGenerateBuildsDocumentFromSession(t *testing.T) {
	obs := []domain.FieldObservation{
		{FieldName: "North", WaterUsage: 100, Rainfall: 10},
		{FieldName: "South", WaterUsage: 250.5, Rainfall: 0},
	}
	sess := newSession(obs...)

	provider := &pdfMock{}
	var captured reportdomain.Document
	provider.On("GenerateReport", mock.Anything, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(reportdomain.Document) }).
		Return(bytes.NewReader([]byte("%PDF-1.3 test")), nil).
		Once()

	svc := newTestService(sess, provider, config.DefaultReportConfig())
	report, err := svc.Generate(context.Background())
	require.NoError(t, err)
	provider.AssertExpectations(t)

	assert.Equal(t, "water_usage_report.pdf", report.FileName)
	assert.Equal(t, reportdomain.ContentTypePDF, report.ContentType)
	assert.Equal(t, "%PDF-1.3 test", string(report.Content))

	summary := statistics.Calculate(obs)
	assert.Equal(t, "2", captured.Statistics.TotalFields)
	assert.Equal(t, "175.25", captured.Statistics.MeanWater)
	assert.Equal(t, formatNumber(summary.Max), captured.Statistics.MaxWater)
	assert.Equal(t, formatNumber(summary.Min), captured.Statistics.MinWater)

	require.Len(t, captured.Rows, 2)
	assert.Equal(t, reportdomain.Row{FieldName: "South", WaterUsage: "250.5", Rainfall: "0"}, captured.Rows[1])
	assert.Equal(t, reportdomain.Header, captured.Header)
	assert.Equal(t, sess.ID.String(), captured.SessionID)
	assert.Equal(t, testNow, captured.GeneratedAt)
	assert.True(t, bytes.HasPrefix(captured.ChartPNG, []byte("\x89PNG")))
	assert.Len(t, captured.Tips, 4)
}

func TestGenerateEmptySession(t *testing.T) {
	provider := &pdfMock{}
	var captured reportdomain.Document
	provider.On("GenerateReport", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(reportdomain.Document) }).
		Return(bytes.NewReader([]byte("%PDF")), nil)

	_, err := newTestService(newSession(), provider, config.DefaultReportConfig()).Generate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, captured.Rows)
	assert.Empty(t, captured.ChartPNG)
	assert.Equal(t, "0", captured.Statistics.TotalFields)
	assert.Equal(t, notAvailable, captured.Statistics.MeanWater)
	assert.Equal(t, notAvailable, captured.Statistics.MaxWater)
}

func TestGenerateWithoutChart(t *testing.T) {
	cfg := config.DefaultReportConfig()
	cfg.IncludeChart = false

	provider := &pdfMock{}
	var captured reportdomain.Document
	provider.On("GenerateReport", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(reportdomain.Document) }).
		Return(bytes.NewReader([]byte("%PDF")), nil)

	sess := newSession(domain.FieldObservation{FieldName: "A", WaterUsage: 1, Rainfall: 1})
	_, err := newTestService(sess, provider, cfg).Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, captured.ChartPNG)
}

func TestGenerateProviderError(t *testing.T) {
	provider := &pdfMock{}
	provider.On("GenerateReport", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := newTestService(newSession(), provider, config.DefaultReportConfig()).Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestGenerateNoOpProvider(t *testing.T) {
	_, err := newTestService(newSession(), &pdf.NoOpProvider{}, config.DefaultReportConfig()).Generate(context.Background())
	assert.ErrorIs(t, err, reportdomain.ErrReportRender)
}

type blockingProvider struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) GenerateReport(ctx context.Context, doc reportdomain.Document) (io.Reader, error) {
	if p.calls.Add(1) == 1 {
		close(p.started)
	}
	<-p.release
	return bytes.NewReader([]byte("%PDF")), nil
}

func TestGenerateCoalescesOverlappingCalls(t *testing.T) {
	provider := &blockingProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc := newTestService(newSession(), provider, config.DefaultReportConfig())

	var wg sync.WaitGroup
	results := make(chan *reportdomain.Report, 2)
	generate := func() {
		defer wg.Done()
		r, err := svc.Generate(context.Background())
		assert.NoError(t, err)
		results <- r
	}

	wg.Add(1)
	go generate()
	<-provider.started

	wg.Add(1)
	go generate()
	// give the second caller time to join the in-flight generation
	time.Sleep(50 * time.Millisecond)
	close(provider.release)
	wg.Wait()
	close(results)

	assert.Equal(t, int32(1), provider.calls.Load())
	for r := range results {
		assert.Equal(t, "%PDF", string(r.Content))
	}

	// a later call starts a fresh generation
	provider.release = make(chan struct{})
	close(provider.release)
	_, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestBuildDocumentMatchesCalculator(t *testing.T) {
	obs := []domain.FieldObservation{
		{FieldName: "A", WaterUsage: 0},
		{FieldName: "B", WaterUsage: 40},
		{FieldName: "C", WaterUsage: 20},
	}
	doc := BuildDocument(config.DefaultReportConfig(), obs, testNow)

	assert.Equal(t, "3", doc.Statistics.TotalFields)
	assert.Equal(t, "20.00", doc.Statistics.MeanWater)
	assert.Equal(t, "40", doc.Statistics.MaxWater)
	assert.Equal(t, "0", doc.Statistics.MinWater)
}

// ctxAwareProvider fails with the context error if ctx ends before release.
type ctxAwareProvider struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *ctxAwareProvider) GenerateReport(ctx context.Context, doc reportdomain.Document) (io.Reader, error) {
	p.once.Do(func() { close(p.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.release:
		return bytes.NewReader([]byte("%PDF")), nil
	}
}

func TestGenerateSurvivesFirstCallerCancel(t *testing.T) {
	provider := &ctxAwareProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc := newTestService(newSession(), provider, config.DefaultReportConfig())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Generate(ctxA)
		errA <- err
	}()
	<-provider.started

	type result struct {
		report *reportdomain.Report
		err    error
	}
	resB := make(chan result, 1)
	go func() {
		r, err := svc.Generate(context.Background())
		resB <- result{report: r, err: err}
	}()
	// let the second caller join the in-flight generation
	time.Sleep(50 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(provider.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, "%PDF", string(b.report.Content))
}

func TestGenerateReturnsWhenCallerCancels(t *testing.T) {
	provider := &ctxAwareProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc := newTestService(newSession(), provider, config.DefaultReportConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(ctx)
		done <- err
	}()
	<-provider.started
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	close(provider.release)
}
