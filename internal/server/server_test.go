package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	facturaedomain "github.com/smallbiznis/facturae/internal/facturae/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
	referencedomain "github.com/smallbiznis/facturae/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceService struct {
	invoice invoicedomain.Invoice
	err     error
}

func (f *fakeInvoiceService) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	if f.err != nil {
		return invoicedomain.ListInvoiceResponse{}, f.err
	}
	return invoicedomain.ListInvoiceResponse{Invoices: []invoicedomain.Invoice{f.invoice}}, nil
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	if f.err != nil {
		return invoicedomain.Invoice{}, f.err
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) LoadForDocument(ctx context.Context, ids []string) ([]invoicedomain.Invoice, error) {
	return []invoicedomain.Invoice{f.invoice}, f.err
}

type fakeFacturaeService struct {
	calls  int
	lastID []string
	result facturaedomain.GenerateResult
	err    error
}

func (f *fakeFacturaeService) Generate(ctx context.Context, req facturaedomain.GenerateRequest) (facturaedomain.GenerateResult, error) {
	f.calls++
	f.lastID = req.InvoiceIDs
	return f.result, f.err
}

type fakePartyService struct{}

func (f *fakePartyService) GetByID(ctx context.Context, id string) (partydomain.Party, error) {
	return partydomain.Party{}, nil
}

func (f *fakePartyService) UpdateFacturaeFields(ctx context.Context, id string, req partydomain.UpdateFacturaeFieldsRequest) (partydomain.Party, error) {
	return partydomain.Party{}, nil
}

type fakePaymentTypeService struct{}

func (f *fakePaymentTypeService) GetByID(ctx context.Context, id string) (paymenttypedomain.PaymentType, error) {
	return paymenttypedomain.PaymentType{}, nil
}

func (f *fakePaymentTypeService) Update(ctx context.Context, id string, req paymenttypedomain.UpdateRequest) (paymenttypedomain.PaymentType, error) {
	return paymenttypedomain.PaymentType{}, nil
}

type fakeReferenceRepo struct{}

func (f *fakeReferenceRepo) ListRectificativeReasons(ctx context.Context) ([]referencedomain.RectificativeReason, error) {
	return referencedomain.RectificativeReasons, nil
}

func (f *fakeReferenceRepo) ListPaymentMeans(ctx context.Context) ([]referencedomain.PaymentMean, error) {
	return referencedomain.PaymentMeans, nil
}

func newTestServer(invoices *fakeInvoiceService, facturae *fakeFacturaeService) *Server {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:            engine,
		InvoiceSvc:     invoices,
		FacturaeSvc:    facturae,
		PartySvc:       &fakePartyService{},
		PaymentTypeSvc: &fakePaymentTypeService{},
		Refrepo:        &fakeReferenceRepo{},
	})
}

func TestGenerateFacturaeRequiresInvoiceIDs(t *testing.T) {
	facturae := &fakeFacturaeService{}
	srv := newTestServer(&fakeInvoiceService{}, facturae)

	body := bytes.NewBufferString(`{"invoice_ids": [], "certificate_password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/facturae", body)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, facturae.calls)
}

func TestGenerateFacturaeForwardsRequest(t *testing.T) {
	facturae := &fakeFacturaeService{
		result: facturaedomain.GenerateResult{Generated: []string{"A-001"}},
	}
	srv := newTestServer(&fakeInvoiceService{}, facturae)

	body := bytes.NewBufferString(`{"invoice_ids": ["1234"], "certificate_password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/facturae", body)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, facturae.calls)
	assert.Equal(t, []string{"1234"}, facturae.lastID)

	var resp struct {
		Data facturaedomain.GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"A-001"}, resp.Data.Generated)
}

func TestGenerateFacturaePreconditionBecomes422(t *testing.T) {
	facturae := &fakeFacturaeService{
		err: &facturaedomain.PreconditionError{
			Check:  facturaedomain.PreconditionMissingCertificate,
			Record: "Acme SL",
		},
	}
	srv := newTestServer(&fakeInvoiceService{}, facturae)

	body := bytes.NewBufferString(`{"invoice_ids": ["1234"], "certificate_password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/facturae", body)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "precondition_failed")
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestDownloadFacturae(t *testing.T) {
	invoices := &fakeInvoiceService{
		invoice: invoicedomain.Invoice{
			Number:   "FACT 2026/001",
			Facturae: []byte("<signed/>"),
		},
	}
	srv := newTestServer(invoices, &fakeFacturaeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/1234/facturae", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<signed/>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "facturae-fact-2026-001.xsig")
}

func TestDownloadFacturaeMissingDocument(t *testing.T) {
	invoices := &fakeInvoiceService{invoice: invoicedomain.Invoice{Number: "A-001"}}
	srv := newTestServer(invoices, &fakeFacturaeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/1234/facturae", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListInvoicesRejectsUnknownState(t *testing.T) {
	srv := newTestServer(&fakeInvoiceService{}, &fakeFacturaeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices?state=teleported", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
