package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/sirupsen/logrus"
)

// csvColumns is the fixed delimited-export column order.
var csvColumns = append([]string{"Invoice Number", "Status", "Error"}, models.InvoiceDataFields...)

// ExportService serializes completed batch reports into the two canonical
// export formats.
type ExportService struct {
	logger *logrus.Logger
}

// NewExportService creates a new export service
func NewExportService(logger *logrus.Logger) ExportServiceInterface {
	return &ExportService{logger: logger}
}

// ToJSON serializes a report with stable key order and human-readable
// indentation. The output round-trips losslessly back to an equivalent
// BatchReport.
func (s *ExportService) ToJSON(report *models.BatchReport) ([]byte, error) {
	if report == nil {
		return nil, ErrReportNotFound
	}
	return json.MarshalIndent(report, "", "  ")
}

// ToCSV serializes a report in the fixed column order. Every field value is
// quote-wrapped and embedded quotes are doubled, so values containing commas,
// quotes, or newlines never break column alignment. Missing optional fields
// render as empty strings.
func (s *ExportService) ToCSV(report *models.BatchReport) ([]byte, error) {
	if report == nil {
		return nil, ErrReportNotFound
	}

	var buf bytes.Buffer
	writeCSVRow(&buf, csvColumns)

	for _, result := range report.Results {
		row := make([]string, 0, len(csvColumns))
		row = append(row, result.InvoiceNumber, result.Status, result.Error)
		for _, field := range models.InvoiceDataFields {
			row = append(row, result.Field(field))
		}
		writeCSVRow(&buf, row)
	}

	s.logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"rows":      len(report.Results),
	}).Debug("Report exported as CSV")

	return buf.Bytes(), nil
}

// Filename derives the deterministic export filename from the report
// timestamp, replacing filesystem-unsafe characters.
func (s *ExportService) Filename(report *models.BatchReport, extension string) string {
	stamp := report.Timestamp.UTC().Format("2006-01-02T15:04:05Z")
	replacer := strings.NewReplacer(":", "-", ".", "-")
	return "invoice-report-" + replacer.Replace(stamp) + "." + extension
}

// writeCSVRow writes one row with every field quoted. encoding/csv quotes
// only when necessary; the delimited contract here requires uniform quoting
// on every column.
func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
