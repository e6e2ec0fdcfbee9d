// Package receiptpdf renders rent receipts as downloadable PDF documents.
package receiptpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

var (
	colorPrimary   = [3]int{30, 58, 95}
	colorTextDark  = [3]int{44, 62, 80}
	colorTextMuted = [3]int{127, 140, 141}
	colorRowAlt    = [3]int{241, 245, 249}
)

// ReceiptData carries everything printed on a receipt.
type ReceiptData struct {
	Token          string
	OwnerName      string
	TenantName     string
	TenantCPF      string
	PropertyLabel  string
	ReferenceMonth string
	Amount         float64
	IssuedAt       time.Time
}

// Generator renders receipt PDFs.
type Generator struct{}

// NewGenerator creates a receipt PDF generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a single-page A4 receipt.
func (g *Generator) Generate(data *ReceiptData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are CP1252; accented labels need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.Rect(0, 0, pageWidth, 8, "F")

	pdf.SetY(25)
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.CellFormat(0, 12, tr("Recibo de Aluguel"), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Recibo nº %s", data.Token)), "", 1, "C", false, 0, "")

	pdf.Ln(10)

	rows := []struct {
		label string
		value string
	}{
		{"Locador", data.OwnerName},
		{"Locatário", data.TenantName},
		{"CPF do locatário", data.TenantCPF},
		{"Imóvel", data.PropertyLabel},
		{"Mês de referência", data.ReferenceMonth},
		{"Valor", fmt.Sprintf("R$ %.2f", data.Amount)},
		{"Data de emissão", data.IssuedAt.Format("02/01/2006")},
	}

	pdf.SetFont("Arial", "", 11)
	for i, row := range rows {
		if row.value == "" {
			continue
		}
		if i%2 == 1 {
			pdf.SetFillColor(colorRowAlt[0], colorRowAlt[1], colorRowAlt[2])
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
		pdf.CellFormat(55, 10, tr(row.label), "", 0, "L", true, 0, "")
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.CellFormat(0, 10, tr(row.value), "", 1, "L", true, 0, "")
	}

	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.MultiCell(0, 6, tr(fmt.Sprintf(
		"Declaro para os devidos fins que recebi de %s a importância de R$ %.2f, "+
			"referente ao aluguel do imóvel %s, com referência ao mês %s.",
		data.TenantName, data.Amount, data.PropertyLabel, data.ReferenceMonth,
	)), "", "L", false)

	pdf.SetY(-40)
	pdf.SetDrawColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	centerX := pageWidth / 2
	pdf.Line(centerX-45, pdf.GetY(), centerX+45, pdf.GetY())
	pdf.Ln(2)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.CellFormat(0, 6, tr(data.OwnerName), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}
