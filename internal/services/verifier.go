package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/imodoiepale/kra-invoice-api/internal/config"
	"github.com/sirupsen/logrus"
)

// RunState is the client-observable state of a batch run.
type RunState string

const (
	RunIdle       RunState = "idle"
	RunSubmitting RunState = "submitting"
	RunSucceeded  RunState = "succeeded"
	RunFailed     RunState = "failed"
)

// batchPayload is the request body sent to the verification endpoint.
type batchPayload struct {
	InvoiceNumbers []string `json:"invoice_numbers"`
}

// VerifierService issues verification requests against the KRA invoice
// lookup endpoint. One request carries the entire identifier batch, so remote
// round-trips stay O(1) regardless of batch size; the trade-off is an
// all-or-nothing transport failure mode. Retries are a whole-batch concern
// left to the caller.
type VerifierService struct {
	config         config.KRAConfig
	client         *http.Client
	logger         *logrus.Logger
	requestCounter int64
	runState       RunState
	mu             sync.RWMutex
}

// NewVerifierService creates a new verifier service
func NewVerifierService(cfg config.KRAConfig, logger *logrus.Logger) VerifierServiceInterface {
	return &VerifierService{
		config: cfg,
		// Per-call deadlines are set via context; the client itself has no
		// global timeout so the batch and single ceilings can differ.
		client:   &http.Client{},
		logger:   logger,
		runState: RunIdle,
	}
}

// Verify submits the whole identifier batch in one POST and returns the raw
// remote payload. Exceeding the batch wait ceiling is a TimeoutError and is
// treated identically to a network failure. Non-2xx responses surface as
// RemoteHTTPError with the body carried verbatim, without retry.
func (s *VerifierService) Verify(ctx context.Context, invoiceNumbers []string) (json.RawMessage, error) {
	if len(invoiceNumbers) == 0 {
		return nil, ErrEmptyInput
	}
	return s.submit(ctx, invoiceNumbers, s.config.BatchTimeout)
}

// VerifySingle performs the reduced single-invoice variant with its shorter
// wait ceiling.
func (s *VerifierService) VerifySingle(ctx context.Context, invoiceNumber string) (json.RawMessage, error) {
	if invoiceNumber == "" {
		return nil, ErrEmptyInput
	}
	return s.submit(ctx, []string{invoiceNumber}, s.config.SingleTimeout)
}

func (s *VerifierService) submit(ctx context.Context, invoiceNumbers []string, ceiling time.Duration) (json.RawMessage, error) {
	start := time.Now()

	s.mu.Lock()
	s.requestCounter++
	requestID := s.requestCounter
	s.runState = RunSubmitting
	s.mu.Unlock()

	logger := s.logger.WithFields(logrus.Fields{
		"endpoint":      s.config.Endpoint,
		"invoice_count": len(invoiceNumbers),
		"run_id":        requestID,
	})

	logger.Info("Submitting invoice verification batch")

	body, err := json.Marshal(batchPayload{InvoiceNumbers: invoiceNumbers})
	if err != nil {
		s.setRunState(RunFailed)
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, s.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		s.setRunState(RunFailed)
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.setRunState(RunFailed)
		if errors.Is(err, context.DeadlineExceeded) || timeoutCtx.Err() == context.DeadlineExceeded {
			logger.WithField("ceiling", ceiling).Error("Verification request timed out")
			return nil, &TimeoutError{Endpoint: s.config.Endpoint, Ceiling: ceiling}
		}
		logger.WithError(err).Error("Verification request failed")
		return nil, fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.setRunState(RunFailed)
		logger.WithError(err).Error("Failed to read verification response")
		return nil, fmt.Errorf("failed to read verification response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.setRunState(RunFailed)
		logger.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"duration": time.Since(start),
		}).Error("Verification endpoint returned error status")
		return nil, &RemoteHTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if !json.Valid(respBody) {
		s.setRunState(RunFailed)
		logger.Error("Verification response is not valid JSON")
		return nil, &MalformedResponseError{Cause: fmt.Errorf("body of %d bytes is not valid JSON", len(respBody))}
	}

	logger.WithField("duration", time.Since(start)).Info("Verification batch submitted")
	return json.RawMessage(respBody), nil
}

// FinishRun records the outcome of the reconciliation step. A run only counts
// as succeeded once both transport and reconciliation have completed.
func (s *VerifierService) FinishRun(err error) {
	if err != nil {
		s.setRunState(RunFailed)
		return
	}
	s.setRunState(RunSucceeded)
}

// RunState returns the client-observable state of the most recent run.
func (s *VerifierService) RunState() RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runState
}

// Endpoint returns the configured verification endpoint URL.
func (s *VerifierService) Endpoint() string {
	return s.config.Endpoint
}

// Health returns service health status
func (s *VerifierService) Health() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"status":        "healthy",
		"endpoint":      s.config.Endpoint,
		"request_count": s.requestCounter,
		"run_state":     string(s.runState),
	}
}

func (s *VerifierService) setRunState(state RunState) {
	s.mu.Lock()
	s.runState = state
	s.mu.Unlock()
}
