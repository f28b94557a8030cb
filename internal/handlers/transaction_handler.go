package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/casaledger/casaledger-api/internal/storage"
	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	ledgerService *services.LedgerService
	storage       *storage.LocalStorage
}

func NewTransactionHandler(ledgerService *services.LedgerService, storage *storage.LocalStorage) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService, storage: storage}
}

// @Summary List Transactions
// @Description Get a paginated list of transactions
// @Tags Transactions
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param project_id query int false "Filter by project"
// @Param customer_id query int false "Filter by customer"
// @Param employee_id query int false "Filter by employee"
// @Param transaction_type query string false "credit or debit"
// @Param fund_source query string false "cash or bank"
// @Param created_from query string false "Created on or after (YYYY-MM-DD)"
// @Param created_to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) Index(c *gin.Context) {
	query := &repository.TransactionQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Type = c.Query("transaction_type")
	query.FundSource = c.Query("fund_source")
	query.Filters["created_from"] = c.Query("created_from")
	query.Filters["created_to"] = c.Query("created_to")

	if pid, err := strconv.ParseUint(c.Query("project_id"), 10, 32); err == nil {
		query.ProjectID = uint(pid)
	}
	if cid, err := strconv.ParseUint(c.Query("customer_id"), 10, 32); err == nil {
		query.CustomerID = uint(cid)
	}
	if eid, err := strconv.ParseUint(c.Query("employee_id"), 10, 32); err == nil {
		query.EmployeeID = uint(eid)
	}

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	txns, total, err := h.ledgerService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, t := range txns {
		responses = append(responses, t.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"transactions": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Transaction
// @Description Get a transaction by ID
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id} [get]
func (h *TransactionHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	txn, err := h.ledgerService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": txn.ToResponse()})
}

// @Summary Record Transaction
// @Description Record a credit or debit against a project and update its remaining amount
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body models.Transaction true "Transaction Data"
// @Success 201 {object} models.TransactionResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var txn models.Transaction
	if err := BindNestedOrFlat(c, "transaction", &txn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledgerService.Record(c.Request.Context(), &txn); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn.ToResponse()})
}

// @Summary Amend Transaction
// @Description Replace a transaction's details; affected project balances are adjusted in one step
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param request body models.Transaction true "Transaction Data"
// @Success 200 {object} models.TransactionResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	var txn models.Transaction
	if err := BindNestedOrFlat(c, "transaction", &txn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txn.ID = uint(id)

	updated, err := h.ledgerService.Amend(c.Request.Context(), &txn)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": updated.ToResponse()})
}

// @Summary Void Transaction
// @Description Delete a transaction and reverse its effect on the project balance (Admin)
// @Tags Transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/{transaction_id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err := h.ledgerService.Void(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transacción anulada"})
}

// @Summary Upload Receipt
// @Description Attach a receipt file (PDF or image) to a transaction
// @Tags Transactions
// @Accept multipart/form-data
// @Produce json
// @Param transaction_id path int true "Transaction ID"
// @Param receipt formData file true "Receipt file"
// @Success 200 {object} models.TransactionResponse
// @Security BearerAuth
// @Router /transactions/{transaction_id}/receipt [post]
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo de comprobante requerido"})
		return
	}
	defer file.Close()

	if c.Request.ContentLength > 0 && c.Request.ContentLength > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El archivo excede el tamaño máximo permitido"})
		return
	}

	if !storage.IsValidContentType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de archivo no permitido"})
		return
	}

	path, err := h.storage.Upload(file, header, "receipts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.ledgerService.AttachReceipt(c.Request.Context(), uint(id), path)
	if err != nil {
		h.storage.Delete(path)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn.ToResponse()})
}

// @Summary Download Receipt
// @Description Download the receipt attached to a transaction
// @Tags Transactions
// @Produce application/octet-stream
// @Param transaction_id path int true "Transaction ID"
// @Success 200 {file} file "receipt"
// @Security BearerAuth
// @Router /transactions/{transaction_id}/receipt [get]
func (h *TransactionHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	txn, err := h.ledgerService.FindByID(c.Request.Context(), uint(id))
	if err != nil || txn.ReceiptPath == nil || *txn.ReceiptPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comprobante no encontrado"})
		return
	}

	fullPath, err := h.storage.SafeFullPath(*txn.ReceiptPath)
	if err != nil || !h.storage.Exists(*txn.ReceiptPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comprobante no encontrado"})
		return
	}

	c.File(fullPath)
}
