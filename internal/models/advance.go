package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PettyCashAdvance represents a cash float handed to an employee, later
// reconciled into spent and returned portions equal to the original amount.
type PettyCashAdvance struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	EmployeeID     uint            `gorm:"not null;index" json:"employee_id"`
	ProjectID      *uint           `gorm:"index" json:"project_id,omitempty"`
	AdvanceAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"advance_amount"`
	ExpenseTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"expense_total"`
	ReturnedAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"returned_amount"`
	Status         string          `gorm:"default:open;not null;index" json:"status"`
	Purpose        *string         `gorm:"type:text" json:"purpose"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Associations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Project  *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`
}

// TableName specifies the table name for PettyCashAdvance
func (PettyCashAdvance) TableName() string {
	return "petty_cash_advances"
}

// Advance status constants
const (
	AdvanceStatusOpen              = "open"
	AdvanceStatusPartiallyReturned = "partially_returned"
	AdvanceStatusClosed            = "closed"
)

// Outstanding returns the portion of the advance not yet reconciled
func (a *PettyCashAdvance) Outstanding() decimal.Decimal {
	return a.AdvanceAmount.Sub(a.ExpenseTotal).Sub(a.ReturnedAmount)
}

// MayClose returns true when spent plus returned equals the advance exactly
func (a *PettyCashAdvance) MayClose() bool {
	return a.Status != AdvanceStatusClosed && a.Outstanding().IsZero()
}

// IsClosed returns true if the advance has been fully reconciled
func (a *PettyCashAdvance) IsClosed() bool {
	return a.Status == AdvanceStatusClosed
}

// AdvanceResponse is the JSON response format for petty-cash advances
type AdvanceResponse struct {
	ID             uint            `json:"id"`
	EmployeeID     uint            `json:"employee_id"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	ProjectID      *uint           `json:"project_id,omitempty"`
	ProjectName    string          `json:"project_name,omitempty"`
	AdvanceAmount  decimal.Decimal `json:"advance_amount"`
	ExpenseTotal   decimal.Decimal `json:"expense_total"`
	ReturnedAmount decimal.Decimal `json:"returned_amount"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	Status         string          `json:"status"`
	Purpose        *string         `json:"purpose"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToResponse converts PettyCashAdvance to AdvanceResponse
func (a *PettyCashAdvance) ToResponse() AdvanceResponse {
	resp := AdvanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		ProjectID:      a.ProjectID,
		AdvanceAmount:  a.AdvanceAmount,
		ExpenseTotal:   a.ExpenseTotal,
		ReturnedAmount: a.ReturnedAmount,
		Outstanding:    a.Outstanding(),
		Status:         a.Status,
		Purpose:        a.Purpose,
		CreatedAt:      a.CreatedAt,
	}
	if a.Employee.ID != 0 {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.Project != nil && a.Project.ID != 0 {
		resp.ProjectName = a.Project.Name
	}
	return resp
}
