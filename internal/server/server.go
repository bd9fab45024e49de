package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/smallbiznis/agritatva/internal/chart"
	"github.com/smallbiznis/agritatva/internal/config"
	"github.com/smallbiznis/agritatva/internal/observability"
	obsmiddleware "github.com/smallbiznis/agritatva/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/agritatva/internal/observability/metrics"
	obstracing "github.com/smallbiznis/agritatva/internal/observability/tracing"
	observationdomain "github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/providers/spreadsheet"
	"github.com/smallbiznis/agritatva/internal/render"
	reportdomain "github.com/smallbiznis/agritatva/internal/report/domain"
	"github.com/smallbiznis/agritatva/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if obsCfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           corsHandler(cfg, r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log = log.Named("http.server")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// corsHandler lets a separately hosted front end call the JSON API.
func corsHandler(cfg config.Config, h http.Handler) http.Handler {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", obsmiddleware.HeaderRequestID},
		ExposedHeaders: []string{obsmiddleware.HeaderRequestID, HeaderSessionID, "Content-Disposition"},
	}).Handler(h)
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	session        *session.Session
	observationSvc observationdomain.Service
	reportSvc      reportdomain.Service
	reportCfg      *config.ReportConfigHolder
	chartRenderer  *chart.Renderer
	exporter       *spreadsheet.Exporter
	pages          render.Renderer
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	Session        *session.Session
	ObservationSvc observationdomain.Service
	ReportSvc      reportdomain.Service
	ReportCfg      *config.ReportConfigHolder
	ChartRenderer  *chart.Renderer
	Exporter       *spreadsheet.Exporter
	Pages          render.Renderer
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("http.handler"),
		session:        p.Session,
		observationSvc: p.ObservationSvc,
		reportSvc:      p.ReportSvc,
		reportCfg:      p.ReportCfg,
		chartRenderer:  p.ChartRenderer,
		exporter:       p.Exporter,
		pages:          p.Pages,
	}

	svc.engine.Use(svc.SessionContext())
	svc.RegisterRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/", s.Index)

	s.engine.POST("/observations", s.CreateObservation)
	s.engine.GET("/observations", s.ListObservations)
	s.engine.GET("/observations.xlsx", s.ExportObservations)
	s.engine.GET("/statistics", s.GetStatistics)

	s.engine.GET("/chart", s.GetChart)
	s.engine.GET("/chart.png", s.RenderChartPNG)
	s.engine.GET("/chart.svg", s.RenderChartSVG)

	s.engine.GET("/report.pdf", s.DownloadReport)

	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
