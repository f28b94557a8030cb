package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportService renders ledger data into downloadable documents
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// LedgerXLSX writes the given transactions to a spreadsheet, one row per
// transaction with signed running totals per fund source.
func (s *ExportService) LedgerXLSX(ctx context.Context, txns []models.Transaction) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Libro"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"Fecha", "Proyecto", "Tipo", "Fuente", "Monto", "Modo de pago", "Motivo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, t := range txns {
		row := i + 2
		amount, _ := t.Amount.Float64()
		mode := ""
		if t.PaymentMode != nil {
			mode = *t.PaymentMode
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.CreatedAt.Format("2006-01-02"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Project.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), t.TransactionType)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), t.FundSource)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), amount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), mode)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), t.Reason)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("libro_transacciones_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// MonthlyExpensesCSV writes the current month's debit transactions as CSV
func (s *ExportService) MonthlyExpensesCSV(ctx context.Context, txns []models.Transaction) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Gastos del mes", time.Now().Format("2006-01")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Fecha", "Proyecto", "Fuente", "Monto", "Motivo"})

	total := decimal.Zero
	for _, t := range txns {
		if t.TransactionType != models.TransactionTypeDebit {
			continue
		}
		total = total.Add(t.Amount)
		_ = writer.Write([]string{
			t.CreatedAt.Format("2006-01-02"),
			t.Project.Name,
			t.FundSource,
			t.Amount.StringFixed(2),
			t.Reason,
		})
	}
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Total", "", "", total.StringFixed(2), ""})

	writer.Flush()

	filename := fmt.Sprintf("gastos_%s.csv", time.Now().Format("2006-01"))
	return buf.Bytes(), filename, nil
}

// ProjectStatementPDF renders a project's balance history: the estimate,
// every transaction with its effect, and the resulting remaining amount.
func (s *ExportService) ProjectStatementPDF(ctx context.Context, project *models.Project) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Estado de Cuenta del Proyecto")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, project.Name)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Cliente:")
	pdf.Cell(60, 8, project.Customer.Name)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Total estimado:")
	pdf.Cell(60, 8, project.EstimatedTotal.StringFixed(2))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(30, 8, "Fecha")
	pdf.Cell(25, 8, "Tipo")
	pdf.Cell(25, 8, "Fuente")
	pdf.Cell(35, 8, "Monto")
	pdf.Cell(35, 8, "Saldo")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	running := project.EstimatedTotal
	for _, t := range project.Transactions {
		running = running.Add(t.BalanceDelta())
		pdf.Cell(30, 7, t.CreatedAt.Format("2006-01-02"))
		pdf.Cell(25, 7, t.TransactionType)
		pdf.Cell(25, 7, t.FundSource)
		pdf.Cell(35, 7, t.Amount.StringFixed(2))
		pdf.Cell(35, 7, running.StringFixed(2))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(80, 8, "Saldo pendiente:")
	pdf.Cell(40, 8, project.RemainingAmount.StringFixed(2))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("estado_proyecto_%d_%s.pdf", project.ID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
