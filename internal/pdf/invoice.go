// Package pdf renders invoice snapshots into printable PDF documents.
// Rendering is a pure function of the snapshot; it never mutates state.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/fakturabok/billing/internal/billing"
	"github.com/fakturabok/billing/internal/models"
	"github.com/fakturabok/billing/internal/validation"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// Invoice renders the snapshot as a one-page (paginated when the line
// count requires it) A4 PDF document.
func Invoice(s *billing.InvoiceSnapshot) ([]byte, error) {
	if err := checkSnapshot(s); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	// Title and invoice metadata
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Invoice")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, lineHeight, "Invoice no: "+s.Number)
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, "Invoice date: "+s.IssueDate.Format("02.01.2006"))
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, "Due date: "+s.DueDate.Format("02.01.2006"))
	pdf.Ln(10)

	// Issuer and billed-to blocks side by side
	top := pdf.GetY()
	writeParty(pdf, "From", issuerLines(s.Issuer))
	bottomLeft := pdf.GetY()
	pdf.SetXY(110, top)
	writePartyAt(pdf, 110, "Billed to", billedToLines(s.BilledTo))
	if pdf.GetY() < bottomLeft {
		pdf.SetY(bottomLeft)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, lineHeight, "Project: "+s.ProjectName)
	pdf.Ln(10)

	writeLineTable(pdf, s)
	writeTotals(pdf, s)

	if s.Issuer.BankRegNo != "" && s.Issuer.BankAccountNo != "" {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Cell(0, lineHeight, "Payment information")
		pdf.Ln(lineHeight)
		pdf.SetFont("Helvetica", "", 9)
		if s.Issuer.BankName != "" {
			pdf.Cell(0, lineHeight, "Bank: "+s.Issuer.BankName)
			pdf.Ln(lineHeight)
		}
		pdf.Cell(0, lineHeight, fmt.Sprintf("Reg. no %s, account no %s", s.Issuer.BankRegNo, s.Issuer.BankAccountNo))
		pdf.Ln(lineHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func checkSnapshot(s *billing.InvoiceSnapshot) error {
	v := validation.Violations{}
	if s == nil {
		v["snapshot"] = "required"
		return &models.ValidationError{Violations: v}
	}
	validation.Required("issuer.name", s.Issuer.Name, v)
	validation.Required("billed_to.name", s.BilledTo.Name, v)
	validation.Required("number", s.Number, v)
	if v.Empty() {
		return nil
	}
	return &models.ValidationError{Violations: v}
}

func issuerLines(i billing.Issuer) []string {
	lines := []string{i.Name}
	lines = appendNonEmpty(lines, i.Street)
	lines = appendNonEmpty(lines, joinNonEmpty(i.PostalCode, i.City))
	lines = appendNonEmpty(lines, i.Country)
	lines = appendNonEmpty(lines, prefixNonEmpty("CVR ", i.CVR))
	lines = appendNonEmpty(lines, i.Email)
	lines = appendNonEmpty(lines, i.Phone)
	return lines
}

func billedToLines(b billing.BilledTo) []string {
	lines := []string{b.Name}
	lines = appendNonEmpty(lines, prefixNonEmpty("Attention: ", b.Attention))
	lines = appendNonEmpty(lines, b.Street)
	lines = appendNonEmpty(lines, joinNonEmpty(b.PostalCode, b.City))
	lines = appendNonEmpty(lines, b.Country)
	lines = appendNonEmpty(lines, prefixNonEmpty("CVR ", b.CVR))
	return lines
}

func writeParty(pdf *gofpdf.Fpdf, heading string, lines []string) {
	writePartyAt(pdf, pageMargin, heading, lines)
}

func writePartyAt(pdf *gofpdf.Fpdf, x float64, heading string, lines []string) {
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(80, lineHeight, heading)
	pdf.Ln(lineHeight)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		pdf.SetX(x)
		pdf.Cell(80, lineHeight-1, line)
		pdf.Ln(lineHeight - 1)
	}
}

func writeLineTable(pdf *gofpdf.Fpdf, s *billing.InvoiceSnapshot) {
	widths := []float64{12, 113, 15, 40}
	headers := []string{"No", "Description", "Qty", "Amount"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range s.Lines {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", i+1), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(line.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, s *billing.InvoiceSnapshot) {
	const labelW, valueW = 140.0, 40.0
	if s.IsBusiness {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(labelW, 7, "Subtotal", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, money(s.Subtotal), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
		ratePct := s.TaxRate.Mul(decimal.NewFromInt(100))
		pdf.CellFormat(labelW, 7, fmt.Sprintf("VAT (%s%%)", trimRate(ratePct)), "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, money(s.TaxAmount), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelW, 8, "Total incl. VAT", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 8, money(s.Total), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 8, money(s.Total), "", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(labelW+valueW, 6, "All prices include VAT.", "", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

// money formats an amount at two decimal places for display.
func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " DKK"
}

// trimRate drops trailing zeros so 25.00 prints as 25.
func trimRate(d decimal.Decimal) string {
	out := d.StringFixed(2)
	out = strings.TrimRight(out, "0")
	return strings.TrimRight(out, ".")
}

func appendNonEmpty(lines []string, s string) []string {
	if strings.TrimSpace(s) == "" {
		return lines
	}
	return append(lines, s)
}

func joinNonEmpty(a, b string) string {
	return strings.TrimSpace(strings.TrimSpace(a) + " " + strings.TrimSpace(b))
}

func prefixNonEmpty(prefix, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return prefix + s
}
