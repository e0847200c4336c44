package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	facturaedomain "github.com/smallbiznis/facturae/internal/facturae/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	var req invoicedomain.ListInvoiceRequest

	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t := invoicedomain.InvoiceType(raw)
		if t != invoicedomain.InvoiceTypeOut && t != invoicedomain.InvoiceTypeIn {
			AbortWithError(c, newValidationError("type", "invalid_type", "invalid invoice type"))
			return
		}
		req.Type = &t
	}
	if raw := strings.TrimSpace(c.Query("state")); raw != "" {
		st := invoicedomain.InvoiceState(raw)
		switch st {
		case invoicedomain.InvoiceStateDraft, invoicedomain.InvoiceStatePosted, invoicedomain.InvoiceStatePaid:
			req.State = &st
		default:
			AbortWithError(c, newValidationError("state", "invalid_state", "invalid invoice state"))
			return
		}
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Invoices})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

// GenerateFacturae runs the assemble, validate and sign pipeline for the
// requested invoices. The certificate password travels only in the request
// body and is never persisted or logged.
func (s *Server) GenerateFacturae(c *gin.Context) {
	var req facturaedomain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}
	if len(req.InvoiceIDs) == 0 {
		AbortWithError(c, newValidationError("invoice_ids", "required", "invoice_ids is required"))
		return
	}

	result, err := s.facturaeSvc.Generate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) DownloadFacturae(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !inv.HasFacturae() {
		AbortWithError(c, invoicedomain.ErrInvoiceNotFound)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.FacturaeFilename()))
	c.Data(http.StatusOK, "application/xml", inv.Facturae)
}
