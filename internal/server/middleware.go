package server

import (
	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/agritatva/internal/observability/context"
)

const HeaderSessionID = "X-Session-Id"

// SessionContext tags the request with the running session id for logs.
func (s *Server) SessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.session == nil {
			c.Next()
			return
		}
		id := s.session.ID.String()
		c.Request = c.Request.WithContext(obscontext.WithSessionID(c.Request.Context(), id))
		c.Header(HeaderSessionID, id)
		c.Next()
	}
}
