package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/imodoiepale/kra-invoice-api/internal/services"
	"github.com/imodoiepale/kra-invoice-api/internal/utils"
	"github.com/sirupsen/logrus"
)

// InvoiceHandler handles invoice verification requests
type InvoiceHandler struct {
	verifier   services.VerifierServiceInterface
	reconciler services.ReconcilerServiceInterface
	probe      services.ProbeServiceInterface
	reports    services.ReportStoreInterface
	logger     *logrus.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	verifier services.VerifierServiceInterface,
	reconciler services.ReconcilerServiceInterface,
	probe services.ProbeServiceInterface,
	reports services.ReportStoreInterface,
	logger *logrus.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		verifier:   verifier,
		reconciler: reconciler,
		probe:      probe,
		reports:    reports,
		logger:     logger,
	}
}

// VerifyBatch handles batch invoice verification
// @Summary Verify a batch of invoice numbers
// @Description Submit invoice numbers (as a list or as raw freeform text) for verification against the KRA invoice lookup service
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body models.VerifyRequest true "Batch verification request"
// @Success 200 {object} models.BatchReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /invoices/verify [post]
func (h *InvoiceHandler) VerifyBatch(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	var request models.VerifyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid verification request format")

		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	invoiceNumbers := request.InvoiceNumbers
	if len(invoiceNumbers) == 0 {
		invoiceNumbers = utils.ParseIdentifiers(request.RawText)
	}

	if len(invoiceNumbers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "No invoice numbers provided",
			Message:   "Input contained no usable invoice numbers",
			Code:      "EMPTY_INPUT",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"invoice_count": len(invoiceNumbers),
	}).Info("Processing batch verification")

	payload, err := h.verifier.Verify(c.Request.Context(), invoiceNumbers)
	if err != nil {
		h.respondVerifyError(c, requestID, err)
		return
	}

	report, err := h.reconciler.Reconcile(invoiceNumbers, payload, h.verifier.Endpoint())
	h.verifier.FinishRun(err)
	if err != nil {
		h.respondVerifyError(c, requestID, err)
		return
	}

	if err := h.reports.Save(c.Request.Context(), report); err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"report_id":  report.ID,
			"error":      err.Error(),
		}).Warn("Failed to retain report for export")
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"report_id":  report.ID,
		"total":      report.Summary.Total,
		"success":    report.Summary.SuccessCount,
		"errors":     report.Summary.ErrorCount,
		"duration":   time.Since(start),
	}).Info("Batch verification completed")

	c.JSON(http.StatusOK, report)
}

// VerifySingle handles the reduced single-invoice variant
// @Summary Verify a single invoice number
// @Description Verify one invoice number against the KRA invoice lookup service
// @Tags Invoices
// @Produce json
// @Param invoiceNo path string true "KRA Control Unit Invoice Number" example(230523011551)
// @Success 200 {object} models.BatchReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /invoices/{invoiceNo} [get]
func (h *InvoiceHandler) VerifySingle(c *gin.Context) {
	requestID := c.GetString("request_id")
	invoiceNumbers := utils.ParseIdentifiers(c.Param("invoiceNo"))

	if len(invoiceNumbers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "No invoice numbers provided",
			Message:   "Invoice number must not be blank",
			Code:      "EMPTY_INPUT",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	payload, err := h.verifier.VerifySingle(c.Request.Context(), invoiceNumbers[0])
	if err != nil {
		h.respondVerifyError(c, requestID, err)
		return
	}

	report, err := h.reconciler.Reconcile(invoiceNumbers[:1], payload, h.verifier.Endpoint())
	h.verifier.FinishRun(err)
	if err != nil {
		h.respondVerifyError(c, requestID, err)
		return
	}

	if err := h.reports.Save(c.Request.Context(), report); err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"report_id":  report.ID,
			"error":      err.Error(),
		}).Warn("Failed to retain report for export")
	}

	c.JSON(http.StatusOK, report)
}

// Probe handles the endpoint reachability check
// @Summary Probe the verification endpoint
// @Description Advisory reachability check against the verification endpoint root. Never gates a verification run
// @Tags Invoices
// @Produce json
// @Success 200 {object} models.EndpointHealth
// @Router /invoices/probe [get]
func (h *InvoiceHandler) Probe(c *gin.Context) {
	health := h.probe.Probe(c.Request.Context())
	c.JSON(http.StatusOK, health)
}

// respondVerifyError maps verification failures onto distinct, readable HTTP
// responses. Remote bodies are surfaced verbatim, not swallowed.
func (h *InvoiceHandler) respondVerifyError(c *gin.Context, requestID string, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"error":      err.Error(),
	}).Error("Verification run failed")

	var timeoutErr *services.TimeoutError
	var remoteErr *services.RemoteHTTPError
	var malformedErr *services.MalformedResponseError
	var shapeErr *services.InvalidShapeError
	var strictErr *services.StrictCountError

	switch {
	case errors.As(err, &timeoutErr):
		c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
			Error:     "Verification timed out",
			Message:   timeoutErr.Error(),
			Code:      "TIMEOUT",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "Verification endpoint returned an error",
			Message:   remoteErr.Error(),
			Code:      "REMOTE_HTTP_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.As(err, &malformedErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "Verification response was malformed",
			Message:   malformedErr.Error(),
			Code:      "MALFORMED_RESPONSE",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.As(err, &shapeErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "Verification response had an unexpected shape",
			Message:   shapeErr.Error(),
			Code:      "INVALID_SHAPE",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.As(err, &strictErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "Result count mismatch",
			Message:   strictErr.Error(),
			Code:      "STRICT_COUNT_MISMATCH",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.Is(err, services.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "No invoice numbers provided",
			Message:   err.Error(),
			Code:      "EMPTY_INPUT",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	default:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "Verification request failed",
			Message:   err.Error(),
			Code:      "NETWORK_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}
