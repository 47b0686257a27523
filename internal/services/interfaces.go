package services

import (
	"context"
	"encoding/json"

	"github.com/imodoiepale/kra-invoice-api/internal/models"
)

// VerifierServiceInterface defines the interface for the verification client
type VerifierServiceInterface interface {
	// Verify submits the whole identifier batch in one request and returns
	// the raw remote payload
	Verify(ctx context.Context, invoiceNumbers []string) (json.RawMessage, error)

	// VerifySingle performs the reduced single-invoice variant
	VerifySingle(ctx context.Context, invoiceNumber string) (json.RawMessage, error)

	// FinishRun records the reconciliation outcome of the current run
	FinishRun(err error)

	// RunState returns the client-observable state of the most recent run
	RunState() RunState

	// Endpoint returns the configured verification endpoint URL
	Endpoint() string

	// Health returns service health status
	Health() map[string]interface{}
}

// ReconcilerServiceInterface defines the interface for result reconciliation
type ReconcilerServiceInterface interface {
	// Reconcile maps a raw remote payload onto a canonical BatchReport
	Reconcile(invoiceNumbers []string, payload json.RawMessage, endpoint string) (*models.BatchReport, error)
}

// ExportServiceInterface defines the interface for report export
type ExportServiceInterface interface {
	// ToJSON serializes a report with stable key order and indentation
	ToJSON(report *models.BatchReport) ([]byte, error)

	// ToCSV serializes a report in the fixed delimited column order
	ToCSV(report *models.BatchReport) ([]byte, error)

	// Filename derives the deterministic export filename for a report
	Filename(report *models.BatchReport, extension string) string
}

// ProbeServiceInterface defines the interface for the endpoint reachability probe
type ProbeServiceInterface interface {
	// Probe checks whether the verification endpoint root is reachable.
	// It is advisory only and never returns an error to the caller.
	Probe(ctx context.Context) models.EndpointHealth
}

// ReportStoreInterface defines the interface for completed-report retention
type ReportStoreInterface interface {
	// Save stores a completed report under its ID
	Save(ctx context.Context, report *models.BatchReport) error

	// Get retrieves a stored report by ID
	Get(ctx context.Context, id string) (*models.BatchReport, error)

	// List returns the IDs of currently retained reports
	List(ctx context.Context) ([]string, error)

	// Health returns report store health status
	Health() map[string]interface{}
}
