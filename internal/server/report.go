package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DownloadReport streams the PDF as an attachment under its fixed file name.
func (s *Server) DownloadReport(c *gin.Context) {
	report, err := s.reportSvc.Generate(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, report.ContentType, report.Content)
}
