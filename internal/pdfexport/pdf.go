// Package pdfexport renders an invoice document to a PDF byte slice.
package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/invoice-studio/internal/invoice"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// Render produces an A4 portrait PDF for the document.
func Render(doc invoice.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	writeHeader(pdf, doc)
	writeParties(pdf, doc)
	writeItems(pdf, doc)
	writeTotals(pdf, doc)
	writeNotes(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdfexport: render: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf, doc invoice.Document) {
	pdf.SetFont("Arial", "B", 22)
	pdf.Cell(120, 12, "INVOICE")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 12, doc.InvoiceNumber, "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, lineHeight, "Invoice date: "+doc.InvoiceDate, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Due date: "+doc.DueDate, "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func writeParties(pdf *gofpdf.Fpdf, doc invoice.Document) {
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(90, lineHeight, "From")
	pdf.CellFormat(0, lineHeight, "Bill To", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	from := partyLines(doc.Company)
	to := partyLines(doc.Client)
	rows := len(from)
	if len(to) > rows {
		rows = len(to)
	}
	for i := 0; i < rows; i++ {
		var left, right string
		if i < len(from) {
			left = from[i]
		}
		if i < len(to) {
			right = to[i]
		}
		pdf.Cell(90, lineHeight-1, left)
		pdf.CellFormat(0, lineHeight-1, right, "", 1, "", false, 0, "")
	}
	pdf.Ln(6)
}

func partyLines(p invoice.Party) []string {
	candidates := []string{
		p.Name,
		p.BusinessID,
		p.TaxID,
		p.AddressLine1,
		joinNonEmpty([]string{p.City, p.State, p.Zip}, ", "),
		p.Country,
		p.Email,
		p.Phone,
	}
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			lines = append(lines, c)
		}
	}
	return lines
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func writeItems(pdf *gofpdf.Fpdf, doc invoice.Document) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 7, "Item", "1", 0, "", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Tax", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Line Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, it := range doc.Items {
		name := it.Name
		if it.SKU != "" {
			name = it.SKU + "  " + name
		}
		pdf.CellFormat(70, 7, name, "1", 0, "", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%g %s", it.Quantity, it.Unit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(doc.Currency, it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(doc.Currency, it.TotalTax), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(doc.Currency, it.LineTotal), "1", 1, "R", false, 0, "")
		for _, tax := range it.Taxes {
			label := fmt.Sprintf("    %s (%g%%)", tax.Name, tax.Rate)
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(120, 5, label, "", 0, "", false, 0, "")
			pdf.CellFormat(60, 5, money(doc.Currency, tax.Amount), "", 1, "R", false, 0, "")
			pdf.SetFont("Arial", "", 9)
		}
	}
	pdf.Ln(4)
}

func writeTotals(pdf *gofpdf.Fpdf, doc invoice.Document) {
	mode := "exclusive"
	if doc.TaxInclusive {
		mode = "inclusive"
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(150, lineHeight, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, lineHeight, money(doc.Currency, doc.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, lineHeight, "Tax ("+mode+")", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, lineHeight, money(doc.Currency, doc.Tax), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, lineHeight+1, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, lineHeight+1, money(doc.Currency, doc.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func writeNotes(pdf *gofpdf.Fpdf, doc invoice.Document) {
	if strings.TrimSpace(doc.Notes) == "" {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, lineHeight, "Notes", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, doc.Notes, "", "", false)
}

func money(currency string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}
