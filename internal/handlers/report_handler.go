package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	ledgerService  *services.LedgerService
	projectService *services.ProjectService
	exportService  *services.ExportService
}

func NewReportHandler(ledgerService *services.LedgerService, projectService *services.ProjectService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		ledgerService:  ledgerService,
		projectService: projectService,
		exportService:  exportService,
	}
}

// @Summary Ledger XLSX
// @Description Download the transaction ledger as a spreadsheet
// @Tags Reports
// @Produce application/octet-stream
// @Param from query string false "Start Date (YYYY-MM-DD)"
// @Success 200 {file} file "ledger.xlsx"
// @Security BearerAuth
// @Router /reports/ledger_xlsx [get]
func (h *ReportHandler) LedgerXLSX(c *gin.Context) {
	from := h.parseFrom(c)
	txns, err := h.ledgerService.FindSince(c.Request.Context(), from)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.exportService.LedgerXLSX(c.Request.Context(), txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// @Summary Monthly Expenses CSV
// @Description Download the current month's debit transactions as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file "expenses.csv"
// @Security BearerAuth
// @Router /reports/monthly_expenses_csv [get]
func (h *ReportHandler) MonthlyExpensesCSV(c *gin.Context) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	txns, err := h.ledgerService.FindSince(c.Request.Context(), monthStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.exportService.MonthlyExpensesCSV(c.Request.Context(), txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Project Statement PDF
// @Description Download a project statement with its running balance as PDF
// @Tags Reports
// @Produce application/pdf
// @Param project_id query int true "Project ID"
// @Success 200 {file} file "statement.pdf"
// @Security BearerAuth
// @Router /reports/project_statement_pdf [get]
func (h *ReportHandler) ProjectStatementPDF(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Query("project_id"), 10, 32)
	if projectID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	project, err := h.projectService.FindByIDWithTransactions(c.Request.Context(), uint(projectID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
		return
	}

	data, filename, err := h.exportService.ProjectStatementPDF(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ReportHandler) parseFrom(c *gin.Context) time.Time {
	if fromStr := c.Query("from"); fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			return t
		}
	}
	// Default to everything
	return time.Time{}
}
