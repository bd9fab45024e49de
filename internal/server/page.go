package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/agritatva/internal/render"
	"github.com/smallbiznis/agritatva/internal/statistics"
)

func (s *Server) Index(c *gin.Context) {
	s.renderPage(c, http.StatusOK, "", render.FormValues{})
}

func (s *Server) renderPage(c *gin.Context, status int, errMsg string, form render.FormValues) {
	snap := s.session.Snapshot()

	rows := make([]render.Row, len(snap.Observations))
	for i, obs := range snap.Observations {
		rows[i] = render.Row{
			Index:      i,
			FieldName:  obs.FieldName,
			WaterUsage: obs.WaterUsage,
			Rainfall:   obs.Rainfall,
		}
	}

	title := ""
	if s.reportCfg != nil {
		title = s.reportCfg.Get().Title
	}

	html, err := s.pages.RenderPage(render.PageInput{
		Title:        title,
		Rows:         rows,
		Statistics:   statistics.Calculate(snap.Observations),
		ChartVersion: snap.Generation,
		Error:        errMsg,
		Form:         form,
	})
	if err != nil {
		s.logHandlerError(c, "render page failed", err)
		AbortWithError(c, err)
		return
	}

	c.Data(status, "text/html; charset=utf-8", []byte(html))
}
