package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single financial event recorded against a project.
// A credit is money received toward the project and lowers its remaining
// amount; a debit is money spent on behalf of the project and raises it.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ProjectID       uint            `gorm:"not null;index" json:"project_id"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	TransactionType string          `gorm:"size:10;not null;index" json:"transaction_type"`
	FundSource      string          `gorm:"size:10;not null;index" json:"fund_source"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMode     *string         `gorm:"size:50" json:"payment_mode"`
	Reason          string          `gorm:"type:text;not null" json:"reason"`
	Metadata        *string         `gorm:"type:jsonb" json:"metadata,omitempty"`
	GUID            string          `gorm:"column:guid;not null" json:"guid"`
	ReceiptPath     *string         `json:"-"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Optional petty-cash links; nulled when the referenced row is deleted
	EmployeeID *uint `gorm:"index" json:"employee_id,omitempty"`
	AdvanceID  *uint `gorm:"index" json:"advance_id,omitempty"`

	// Associations
	Project  Project           `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Customer Customer          `gorm:"foreignKey:CustomerID" json:"-"`
	Employee *Employee         `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL" json:"employee,omitempty"`
	Advance  *PettyCashAdvance `gorm:"foreignKey:AdvanceID;constraint:OnDelete:SET NULL" json:"advance,omitempty"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// Transaction type constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Fund source constants
const (
	FundSourceCash = "cash"
	FundSourceBank = "bank"
)

// IsValidType reports whether t is a known transaction type
func IsValidType(t string) bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// IsValidFundSource reports whether s is a known fund source
func IsValidFundSource(s string) bool {
	return s == FundSourceCash || s == FundSourceBank
}

// BalanceDelta returns the adjustment this transaction applies to its
// project's remaining amount: -amount for credits, +amount for debits.
func (t *Transaction) BalanceDelta() decimal.Decimal {
	if t.TransactionType == TransactionTypeCredit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ReversalDelta returns the exact inverse of BalanceDelta, used when the
// transaction is amended or voided.
func (t *Transaction) ReversalDelta() decimal.Decimal {
	return t.BalanceDelta().Neg()
}

// TransactionResponse is the JSON response format for transactions
type TransactionResponse struct {
	ID              uint            `json:"id"`
	ProjectID       uint            `json:"project_id"`
	ProjectName     string          `json:"project_name,omitempty"`
	CustomerID      uint            `json:"customer_id"`
	TransactionType string          `json:"transaction_type"`
	FundSource      string          `json:"fund_source"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMode     *string         `json:"payment_mode"`
	Reason          string          `json:"reason"`
	Metadata        *string         `json:"metadata,omitempty"`
	EmployeeID      *uint           `json:"employee_id,omitempty"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	AdvanceID       *uint           `json:"advance_id,omitempty"`
	HasReceipt      bool            `json:"has_receipt"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		CustomerID:      t.CustomerID,
		TransactionType: t.TransactionType,
		FundSource:      t.FundSource,
		Amount:          t.Amount,
		PaymentMode:     t.PaymentMode,
		Reason:          t.Reason,
		Metadata:        t.Metadata,
		EmployeeID:      t.EmployeeID,
		AdvanceID:       t.AdvanceID,
		HasReceipt:      t.ReceiptPath != nil && *t.ReceiptPath != "",
		CreatedAt:       t.CreatedAt,
	}
	if t.Project.ID != 0 {
		resp.ProjectName = t.Project.Name
	}
	if t.Employee != nil && t.Employee.ID != 0 {
		resp.EmployeeName = t.Employee.FullName
	}
	return resp
}
