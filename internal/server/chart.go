package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/agritatva/internal/chart"
)

type chartResponse struct {
	chart.Scatter
	Generation uint64 `json:"generation"`
}

func (s *Server) GetChart(c *gin.Context) {
	scatter, generation := s.session.Chart()
	c.JSON(http.StatusOK, gin.H{"data": chartResponse{Scatter: scatter, Generation: generation}})
}

func (s *Server) RenderChartPNG(c *gin.Context) {
	s.renderChart(c, chart.FormatPNG)
}

func (s *Server) RenderChartSVG(c *gin.Context) {
	s.renderChart(c, chart.FormatSVG)
}

func (s *Server) renderChart(c *gin.Context, format chart.Format) {
	scatter, _ := s.session.Chart()

	var buf bytes.Buffer
	if err := s.chartRenderer.Render(scatter, format, &buf); err != nil {
		if errors.Is(err, chart.ErrEmptyChart) {
			c.Status(http.StatusNoContent)
			return
		}
		s.logHandlerError(c, "render chart failed", err)
		AbortWithError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
