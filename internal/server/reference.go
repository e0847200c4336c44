package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListRectificativeReasons(c *gin.Context) {
	reasons, err := s.refrepo.ListRectificativeReasons(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reasons})
}

func (s *Server) ListPaymentMeans(c *gin.Context) {
	means, err := s.refrepo.ListPaymentMeans(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": means})
}
