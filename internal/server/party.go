package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
)

func (s *Server) GetPartyByID(c *gin.Context) {
	p, err := s.partySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (s *Server) UpdatePartyFacturaeFields(c *gin.Context) {
	var req partydomain.UpdateFacturaeFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	p, err := s.partySvc.UpdateFacturaeFields(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}
