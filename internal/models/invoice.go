package models

import (
	"time"
)

// Invoice result statuses as reported by the KRA lookup service.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Data field names returned by the KRA invoice lookup service. The CSV export
// column order is derived from this list.
var InvoiceDataFields = []string{
	"Control Unit Invoice Number",
	"Trader System Invoice No",
	"Invoice Date",
	"Total Taxable Amount",
	"Total Tax Amount",
	"Total Invoice Amount",
	"Supplier Name",
}

// VerifyRequest represents a batch verification request. Either RawText or
// InvoiceNumbers may be supplied; RawText is run through the identifier parser.
type VerifyRequest struct {
	RawText        string   `json:"raw_text,omitempty" example:"230523011551\n230523011552,230523011553"`
	InvoiceNumbers []string `json:"invoice_numbers,omitempty" example:"[\"230523011551\",\"230523011552\"]"`
}

// InvoiceResult represents one outcome per requested invoice number.
// Exactly one of Data/Error is populated depending on Status.
type InvoiceResult struct {
	InvoiceNumber string            `json:"invoice_number" example:"230523011551"`
	Status        string            `json:"status" example:"success"`
	Data          map[string]string `json:"data,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// Success reports whether the result carries invoice data.
func (r InvoiceResult) Success() bool {
	return r.Status == StatusSuccess
}

// Field returns a named data field, or the empty string when absent.
func (r InvoiceResult) Field(name string) string {
	if r.Data == nil {
		return ""
	}
	return r.Data[name]
}

// Summary holds the derived per-run counts.
type Summary struct {
	Total        int `json:"total" example:"3"`
	SuccessCount int `json:"success_count" example:"2"`
	ErrorCount   int `json:"error_count" example:"1"`
}

// BatchReport is the aggregate of one verification run. It is assembled once
// by the reconciler and never mutated afterwards, so concurrent exports of the
// same report are safe without locking.
type BatchReport struct {
	ID        string          `json:"id,omitempty" example:"5f1c32e4-8a2b-4f6d-9c3e-7b1a2d4e5f60"`
	Timestamp time.Time       `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Endpoint  string          `json:"endpoint" example:"http://localhost:8000/invoices/details"`
	Requested []string        `json:"requested"`
	Results   []InvoiceResult `json:"results"`
	Summary   Summary         `json:"summary"`
}

// VerifyEnvelope is the top-level response structure of the remote
// verification service.
type VerifyEnvelope struct {
	Results []InvoiceResult `json:"results"`
}

// EndpointHealth is the transient outcome of a reachability probe. It is
// recomputed on every probe call and never persisted.
type EndpointHealth struct {
	Reachable bool      `json:"reachable" example:"true"`
	Detail    string    `json:"detail" example:"endpoint responded with status 200"`
	CheckedAt time.Time `json:"checked_at" example:"2024-01-15T10:30:00Z"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error" example:"No invoice numbers provided"`
	Message   string    `json:"message" example:"Input contained no usable invoice numbers"`
	Code      string    `json:"code,omitempty" example:"EMPTY_INPUT"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Path      string    `json:"path" example:"/api/v1/invoices/verify"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp time.Time              `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Version   string                 `json:"version" example:"1.1.0"`
	Services  map[string]ServiceInfo `json:"services"`
	Uptime    string                 `json:"uptime" example:"2h30m45s"`
}

// ServiceInfo represents individual service health
type ServiceInfo struct {
	Status    string    `json:"status" example:"healthy"`
	LastCheck time.Time `json:"last_check" example:"2024-01-15T10:30:00Z"`
	Error     string    `json:"error,omitempty"`
}
