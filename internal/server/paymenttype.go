package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
)

func (s *Server) GetPaymentTypeByID(c *gin.Context) {
	pt, err := s.paymentTypeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pt})
}

func (s *Server) UpdatePaymentType(c *gin.Context) {
	var req paymenttypedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	pt, err := s.paymentTypeSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pt})
}
