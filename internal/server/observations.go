package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/agritatva/internal/observability/logger"
	observationdomain "github.com/smallbiznis/agritatva/internal/observation/domain"
	"github.com/smallbiznis/agritatva/internal/render"
	"go.uber.org/zap"
)

// CreateObservation accepts either the HTML form or a JSON body. Form posts
// redirect back to the page; JSON callers get the stored observation.
func (s *Server) CreateObservation(c *gin.Context) {
	if isJSONRequest(c) {
		s.createObservationJSON(c)
		return
	}

	req := observationdomain.CreateRequest{
		FieldName:  c.PostForm("field-name"),
		WaterUsage: c.PostForm("water-usage"),
		Rainfall:   c.PostForm("rainfall"),
	}

	if _, err := s.observationSvc.Record(c.Request.Context(), req); err != nil {
		if !observationdomain.IsValidationError(err) {
			AbortWithError(c, err)
			return
		}
		_ = c.Error(err)
		s.renderPage(c, http.StatusBadRequest, validationErrorMessage(validationErrorCode(err)), render.FormValues{
			FieldName:  req.FieldName,
			WaterUsage: req.WaterUsage,
			Rainfall:   req.Rainfall,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

type createObservationRequest struct {
	FieldName  string      `json:"field_name"`
	WaterUsage jsonDecimal `json:"water_usage"`
	Rainfall   jsonDecimal `json:"rainfall"`
}

func (s *Server) createObservationJSON(c *gin.Context) {
	var req createObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.observationSvc.Record(c.Request.Context(), observationdomain.CreateRequest{
		FieldName:  req.FieldName,
		WaterUsage: string(req.WaterUsage),
		Rainfall:   string(req.Rainfall),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListObservations(c *gin.Context) {
	resp, err := s.observationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStatistics(c *gin.Context) {
	resp, err := s.observationSvc.Statistics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isJSONRequest(c *gin.Context) bool {
	return strings.HasPrefix(strings.ToLower(c.ContentType()), "application/json")
}

// jsonDecimal accepts both JSON numbers and numeric strings so validation
// stays in one place.
type jsonDecimal string

func (d *jsonDecimal) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*d = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	*d = jsonDecimal(raw)
	return nil
}

func (s *Server) logHandlerError(c *gin.Context, msg string, err error) {
	logger.WithContext(c.Request.Context(), s.log).Error(msg, zap.Error(err))
}
