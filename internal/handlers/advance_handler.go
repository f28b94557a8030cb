package handlers

import (
	"net/http"
	"strconv"

	"github.com/casaledger/casaledger-api/internal/middleware"
	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdvanceHandler struct {
	advanceService *services.AdvanceService
}

func NewAdvanceHandler(advanceService *services.AdvanceService) *AdvanceHandler {
	return &AdvanceHandler{advanceService: advanceService}
}

// @Summary List Advances
// @Description Get a paginated list of petty-cash advances
// @Tags Advances
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param employee_id query int false "Filter by employee"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /advances [get]
func (h *AdvanceHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["status"] = c.Query("status")
	query.Filters["employee_id"] = c.Query("employee_id")

	advances, total, err := h.advanceService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, a := range advances {
		responses = append(responses, a.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"advances": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Advance
// @Description Get a petty-cash advance by ID
// @Tags Advances
// @Accept json
// @Produce json
// @Param advance_id path int true "Advance ID"
// @Success 200 {object} models.AdvanceResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /advances/{advance_id} [get]
func (h *AdvanceHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("advance_id"), 10, 32)
	advance, err := h.advanceService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Anticipo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advance": advance.ToResponse()})
}

// @Summary Create Advance
// @Description Hand out a petty-cash advance to an employee
// @Tags Advances
// @Accept json
// @Produce json
// @Param request body models.PettyCashAdvance true "Advance Data"
// @Success 201 {object} models.AdvanceResponse
// @Security BearerAuth
// @Router /advances [post]
func (h *AdvanceHandler) Create(c *gin.Context) {
	var advance models.PettyCashAdvance
	if err := BindNestedOrFlat(c, "advance", &advance); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.advanceService.Create(c.Request.Context(), &advance); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"advance": advance.ToResponse()})
}

type AdvanceExpenseRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	FundSource string          `json:"fund_source"`
	Reason     string          `json:"reason" binding:"required"`
}

// @Summary Register Expense
// @Description Register money spent from an advance. When the advance is tied to a project a debit transaction is recorded against it.
// @Tags Advances
// @Accept json
// @Produce json
// @Param advance_id path int true "Advance ID"
// @Param request body AdvanceExpenseRequest true "Expense Data"
// @Success 200 {object} models.AdvanceResponse
// @Security BearerAuth
// @Router /advances/{advance_id}/expense [post]
func (h *AdvanceHandler) RegisterExpense(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("advance_id"), 10, 32)
	var req AdvanceExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advance, err := h.advanceService.RegisterExpense(c.Request.Context(), uint(id), req.Amount, req.FundSource, req.Reason)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advance": advance.ToResponse()})
}

type AdvanceReturnRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// @Summary Register Return
// @Description Register unspent money an employee returned from an advance
// @Tags Advances
// @Accept json
// @Produce json
// @Param advance_id path int true "Advance ID"
// @Param request body AdvanceReturnRequest true "Return Data"
// @Success 200 {object} models.AdvanceResponse
// @Security BearerAuth
// @Router /advances/{advance_id}/return [post]
func (h *AdvanceHandler) RegisterReturn(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("advance_id"), 10, 32)
	var req AdvanceReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advance, err := h.advanceService.RegisterReturn(c.Request.Context(), uint(id), req.Amount)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advance": advance.ToResponse()})
}

// @Summary Close Advance
// @Description Close a fully reconciled advance. Fails while any amount remains outstanding.
// @Tags Advances
// @Accept json
// @Produce json
// @Param advance_id path int true "Advance ID"
// @Success 200 {object} models.AdvanceResponse
// @Security BearerAuth
// @Router /advances/{advance_id}/close [post]
func (h *AdvanceHandler) Close(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("advance_id"), 10, 32)
	advance, err := h.advanceService.Close(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advance": advance.ToResponse()})
}

// @Summary Delete Advance
// @Description Delete an advance; its transactions keep a null advance link (Admin)
// @Tags Advances
// @Accept json
// @Produce json
// @Param advance_id path int true "Advance ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /advances/{advance_id} [delete]
func (h *AdvanceHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("advance_id"), 10, 32)
	if err := h.advanceService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Anticipo eliminado"})
}
