package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.BatchReport {
	return &models.BatchReport{
		ID:        "11111111-2222-3333-4444-555555555555",
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Endpoint:  "http://example.test/invoices/details",
		Requested: []string{"230523011551", "230523011552"},
		Results: []models.InvoiceResult{
			{
				InvoiceNumber: "230523011551",
				Status:        models.StatusSuccess,
				Data: map[string]string{
					"Control Unit Invoice Number": "230523011551",
					"Trader System Invoice No":    "INV-001",
					"Invoice Date":                "15/01/2024",
					"Total Taxable Amount":        "1000.00",
					"Total Tax Amount":            "160.00",
					"Total Invoice Amount":        "1160.00",
					"Supplier Name":               `ACME "EAST AFRICA", LTD`,
				},
			},
			{
				InvoiceNumber: "230523011552",
				Status:        models.StatusError,
				Error:         "Invoice details not found",
			},
		},
		Summary: models.Summary{Total: 2, SuccessCount: 1, ErrorCount: 1},
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	exporter := NewExportService(testLogger())
	report := sampleReport()

	data, err := exporter.ToJSON(report)
	require.NoError(t, err)

	var restored models.BatchReport
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, report.ID, restored.ID)
	assert.True(t, report.Timestamp.Equal(restored.Timestamp))
	assert.Equal(t, report.Endpoint, restored.Endpoint)
	assert.Equal(t, report.Requested, restored.Requested)
	assert.Equal(t, report.Results, restored.Results)
	assert.Equal(t, report.Summary, restored.Summary)
}

func TestToJSONIsIndented(t *testing.T) {
	exporter := NewExportService(testLogger())

	data, err := exporter.ToJSON(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
}

func TestToCSVQuotingSurvivesReparse(t *testing.T) {
	exporter := NewExportService(testLogger())

	data, err := exporter.ToCSV(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Header plus one row per result, ten columns each.
	require.Len(t, records, 3)
	for _, record := range records {
		assert.Len(t, record, 10)
	}

	assert.Equal(t, []string{
		"Invoice Number", "Status", "Error",
		"Control Unit Invoice Number", "Trader System Invoice No", "Invoice Date",
		"Total Taxable Amount", "Total Tax Amount", "Total Invoice Amount", "Supplier Name",
	}, records[0])

	// The embedded quotes and comma in the supplier name must round-trip.
	assert.Equal(t, `ACME "EAST AFRICA", LTD`, records[1][9])

	// Missing optional fields render as empty strings, not placeholders.
	assert.Equal(t, "Invoice details not found", records[2][2])
	for _, field := range records[2][3:] {
		assert.Empty(t, field)
	}
}

func TestToCSVQuotesEveryField(t *testing.T) {
	exporter := NewExportService(testLogger())

	data, err := exporter.ToCSV(sampleReport())
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\r\n") {
		assert.True(t, strings.HasPrefix(line, `"`), "line %q must start with a quote", line)
		assert.True(t, strings.HasSuffix(line, `"`), "line %q must end with a quote", line)
	}
}

func TestToCSVNewlineInValueKeepsColumnAlignment(t *testing.T) {
	exporter := NewExportService(testLogger())
	report := sampleReport()
	report.Results[0].Data["Supplier Name"] = "LINE ONE\nLINE TWO"

	data, err := exporter.ToCSV(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "LINE ONE\nLINE TWO", records[1][9])
}

func TestExportNilReport(t *testing.T) {
	exporter := NewExportService(testLogger())

	_, err := exporter.ToJSON(nil)
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = exporter.ToCSV(nil)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestFilenameIsDeterministicAndFilesystemSafe(t *testing.T) {
	exporter := NewExportService(testLogger())
	report := sampleReport()

	name := exporter.Filename(report, "csv")
	assert.Equal(t, name, exporter.Filename(report, "csv"))
	assert.True(t, strings.HasSuffix(name, ".csv"))

	base := strings.TrimSuffix(name, ".csv")
	assert.NotContains(t, base, ":")
	assert.NotContains(t, base, ".")
}
