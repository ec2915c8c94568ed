package service

import (
	"bytes"
	"fmt"

	gofpdf "github.com/jung-kurt/gofpdf/v2"
)

// PresenceReportRow is one user line of the presence report.
type PresenceReportRow struct {
	FullName   string
	Department string
	Cohort     string
	FirstIn    string
	LastOut    string
	Status     string
}

// PresenceReportSummary carries the aggregate block printed above the rows.
type PresenceReportSummary struct {
	Title              string
	Period             string
	TotalUsers         int
	Presents           int
	Absents            int
	Lates              int
	PresencePercentage *float64
}

// BuildPresenceReport renders the daily presence report as a PDF.
func BuildPresenceReport(summary PresenceReportSummary, rows []PresenceReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, summary.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Period: %s", summary.Period))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(90, 8, "Metric")
	pdf.Cell(90, 8, "Value")
	pdf.Ln(8)

	percentage := "n/a"
	if summary.PresencePercentage != nil {
		percentage = fmt.Sprintf("%.2f%%", *summary.PresencePercentage)
	}

	metrics := []struct {
		label string
		value string
	}{
		{"Total users", fmt.Sprintf("%d", summary.TotalUsers)},
		{"Present", fmt.Sprintf("%d", summary.Presents)},
		{"Absent", fmt.Sprintf("%d", summary.Absents)},
		{"Late", fmt.Sprintf("%d", summary.Lates)},
		{"Presence rate", percentage},
	}

	pdf.SetFont("Arial", "", 11)
	for _, m := range metrics {
		pdf.Cell(90, 7, m.label)
		pdf.Cell(90, 7, m.value)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	headers := []struct {
		label string
		width float64
	}{
		{"Name", 45},
		{"Department", 30},
		{"Cohort", 25},
		{"First in", 25},
		{"Last out", 25},
		{"Status", 25},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		cells := []struct {
			value string
			width float64
		}{
			{row.FullName, 45},
			{row.Department, 30},
			{row.Cohort, 25},
			{row.FirstIn, 25},
			{row.LastOut, 25},
			{row.Status, 25},
		}
		for _, c := range cells {
			pdf.CellFormat(c.width, 6, c.value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}
