package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/agritatva/internal/providers/spreadsheet"
	"github.com/smallbiznis/agritatva/internal/statistics"
)

func (s *Server) ExportObservations(c *gin.Context) {
	observations := s.session.Observations()

	buf, err := s.exporter.ExportObservations(observations, statistics.Calculate(observations))
	if err != nil {
		s.logHandlerError(c, "export observations failed", err)
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, spreadsheet.FileName))
	c.Data(http.StatusOK, spreadsheet.ContentType, buf.Bytes())
}
