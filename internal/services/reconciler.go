package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/sirupsen/logrus"
)

// ReconcilerService maps raw remote payloads onto canonical BatchReports.
type ReconcilerService struct {
	strict bool
	logger *logrus.Logger
}

// NewReconcilerService creates a new reconciler service. With strict enabled,
// reconciliation fails when the remote returns a different number of results
// than was requested; otherwise short or reordered responses are accepted and
// the report reflects only what was returned.
func NewReconcilerService(strict bool, logger *logrus.Logger) ReconcilerServiceInterface {
	return &ReconcilerService{
		strict: strict,
		logger: logger,
	}
}

// rawEnvelope mirrors the remote envelope with the results left undecoded so
// each element can be inspected defensively.
type rawEnvelope struct {
	Results *[]json.RawMessage `json:"results"`
}

// Reconcile validates the envelope shape and assembles an immutable
// BatchReport. Elements lacking a recognizable status are surfaced as error
// results rather than dropped, preserving 1:1 accounting between what the
// remote reported and what the report contains.
func (s *ReconcilerService) Reconcile(invoiceNumbers []string, payload json.RawMessage, endpoint string) (*models.BatchReport, error) {
	var envelope rawEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &InvalidShapeError{Detail: "envelope is not a JSON object"}
	}
	if envelope.Results == nil {
		return nil, &InvalidShapeError{Detail: "missing \"results\" array"}
	}

	results := make([]models.InvoiceResult, 0, len(*envelope.Results))
	for _, raw := range *envelope.Results {
		results = append(results, decodeResult(raw))
	}

	if s.strict && len(results) != len(invoiceNumbers) {
		return nil, &StrictCountError{Requested: len(invoiceNumbers), Returned: len(results)}
	}

	summary := models.Summary{Total: len(results)}
	for _, r := range results {
		if r.Success() {
			summary.SuccessCount++
		}
	}
	summary.ErrorCount = summary.Total - summary.SuccessCount

	if summary.Total != len(invoiceNumbers) {
		s.logger.WithFields(logrus.Fields{
			"requested": len(invoiceNumbers),
			"returned":  summary.Total,
		}).Warn("Remote returned a different number of results than requested")
	}

	report := &models.BatchReport{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Endpoint:  endpoint,
		Requested: invoiceNumbers,
		Results:   results,
		Summary:   summary,
	}

	s.logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"total":     summary.Total,
		"success":   summary.SuccessCount,
		"errors":    summary.ErrorCount,
	}).Info("Batch report assembled")

	return report, nil
}

// decodeResult decodes a single envelope element defensively. The remote
// shape is duck-typed, so anything without a usable status falls back to an
// error result instead of failing the whole run.
func decodeResult(raw json.RawMessage) models.InvoiceResult {
	var result models.InvoiceResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return models.InvoiceResult{
			Status: models.StatusError,
			Error:  "unrecognized result entry in remote response",
		}
	}

	switch result.Status {
	case models.StatusSuccess:
		if result.Data == nil {
			result.Data = map[string]string{}
		}
		result.Error = ""
	case models.StatusError:
		if result.Error == "" {
			result.Error = "remote reported an error without a message"
		}
		result.Data = nil
	default:
		result = models.InvoiceResult{
			InvoiceNumber: result.InvoiceNumber,
			Status:        models.StatusError,
			Error:         "remote result carried no recognizable status",
		}
	}

	return result
}
