package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/imodoiepale/kra-invoice-api/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// stubVerifier satisfies VerifierServiceInterface without touching the network.
type stubVerifier struct {
	payload  json.RawMessage
	err      error
	state    services.RunState
	received []string
}

func (s *stubVerifier) Verify(_ context.Context, invoiceNumbers []string) (json.RawMessage, error) {
	s.received = invoiceNumbers
	if s.err != nil {
		s.state = services.RunFailed
		return nil, s.err
	}
	s.state = services.RunSubmitting
	return s.payload, nil
}

func (s *stubVerifier) VerifySingle(ctx context.Context, invoiceNumber string) (json.RawMessage, error) {
	return s.Verify(ctx, []string{invoiceNumber})
}

func (s *stubVerifier) FinishRun(err error) {
	if err != nil {
		s.state = services.RunFailed
		return
	}
	s.state = services.RunSucceeded
}

func (s *stubVerifier) RunState() services.RunState { return s.state }

func (s *stubVerifier) Endpoint() string { return "http://example.test/invoices/details" }

func (s *stubVerifier) Health() map[string]interface{} {
	return map[string]interface{}{"status": "healthy"}
}

type stubProbe struct {
	health models.EndpointHealth
}

func (s *stubProbe) Probe(_ context.Context) models.EndpointHealth { return s.health }

func newTestRouter(verifier *stubVerifier, probe *stubProbe) (*gin.Engine, services.ReportStoreInterface) {
	gin.SetMode(gin.TestMode)

	logger := testLogger()
	reconciler := services.NewReconcilerService(false, logger)
	reports := services.NewReportStore(nil, time.Minute, logger)
	handler := NewInvoiceHandler(verifier, reconciler, probe, reports, logger)

	router := gin.New()
	router.POST("/api/v1/invoices/verify", handler.VerifyBatch)
	router.GET("/api/v1/invoices/probe", handler.Probe)
	router.GET("/api/v1/invoices/:invoiceNo", handler.VerifySingle)

	return router, reports
}

func TestVerifyBatchParsesRawText(t *testing.T) {
	verifier := &stubVerifier{
		payload: json.RawMessage(`{"results": [
			{"invoice_number": "a", "status": "success", "data": {"Supplier Name": "ACME"}},
			{"invoice_number": "b", "status": "success", "data": {}},
			{"invoice_number": "c", "status": "error", "error": "not found"},
			{"invoice_number": "d", "status": "success", "data": {}}
		]}`),
	}
	router, reports := newTestRouter(verifier, &stubProbe{})

	body := `{"raw_text": "a\nb,c\n\nd"}`
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/verify", strings.NewReader(body))
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b", "c", "d"}, verifier.received)

	var report models.BatchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 4, report.Summary.Total)
	assert.Equal(t, 3, report.Summary.SuccessCount)
	assert.Equal(t, 1, report.Summary.ErrorCount)
	assert.Equal(t, services.RunSucceeded, verifier.RunState())

	// The completed report is retained for later export.
	stored, err := reports.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Summary, stored.Summary)
}

func TestVerifyBatchEmptyInput(t *testing.T) {
	router, _ := newTestRouter(&stubVerifier{}, &stubProbe{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/verify", strings.NewReader(`{"raw_text": " \n , \n"}`))
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_INPUT", resp.Code)
}

func TestVerifyBatchTimeout(t *testing.T) {
	verifier := &stubVerifier{
		err: &services.TimeoutError{Endpoint: "http://example.test", Ceiling: 45 * time.Second},
	}
	router, _ := newTestRouter(verifier, &stubProbe{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/verify", strings.NewReader(`{"invoice_numbers": ["a"]}`))
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, services.RunFailed, verifier.RunState())

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "TIMEOUT", resp.Code)
}

func TestVerifyBatchRemoteHTTPErrorShownVerbatim(t *testing.T) {
	verifier := &stubVerifier{
		err: &services.RemoteHTTPError{StatusCode: 500, Body: "KRA portal internal error"},
	}
	router, _ := newTestRouter(verifier, &stubProbe{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/verify", strings.NewReader(`{"invoice_numbers": ["a"]}`))
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "REMOTE_HTTP_ERROR", resp.Code)
	assert.Contains(t, resp.Message, "KRA portal internal error")
}

func TestVerifyBatchInvalidShape(t *testing.T) {
	verifier := &stubVerifier{payload: json.RawMessage(`{"unexpected": true}`)}
	router, _ := newTestRouter(verifier, &stubProbe{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/verify", strings.NewReader(`{"invoice_numbers": ["a"]}`))
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, services.RunFailed, verifier.RunState())

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_SHAPE", resp.Code)
}

func TestVerifySingle(t *testing.T) {
	verifier := &stubVerifier{
		payload: json.RawMessage(`{"results": [{"invoice_number": "solo", "status": "success", "data": {}}]}`),
	}
	router, _ := newTestRouter(verifier, &stubProbe{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/solo", nil)
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"solo"}, verifier.received)

	var report models.BatchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.Total)
}

func TestProbeHandler(t *testing.T) {
	probe := &stubProbe{health: models.EndpointHealth{
		Reachable: false,
		Detail:    "endpoint unreachable: connection refused",
		CheckedAt: time.Now(),
	}}
	router, _ := newTestRouter(&stubVerifier{}, probe)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/probe", nil)
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var health models.EndpointHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.False(t, health.Reachable)
	assert.NotEmpty(t, health.Detail)
}
