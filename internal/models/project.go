package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project represents a furnishing/interiors job for a customer
type Project struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     *string         `gorm:"type:text" json:"description"`
	EstimatedTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"estimated_total"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"remaining_amount"`
	Status          string          `gorm:"default:prospect;not null;index" json:"status"`
	GUID            string          `gorm:"column:guid;not null" json:"guid"`
	StartDate       *time.Time      `gorm:"type:date" json:"start_date"`
	EndDate         *time.Time      `gorm:"type:date" json:"end_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Associations. Deleting a project removes its transactions.
	Customer     Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// Project status constants
const (
	ProjectStatusProspect  = "prospect"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// MayActivate returns true if the project can move to active
func (p *Project) MayActivate() bool {
	return p.Status == ProjectStatusProspect
}

// MayComplete returns true if the project can be completed
func (p *Project) MayComplete() bool {
	return p.Status == ProjectStatusActive
}

// MayCancel returns true if the project can be cancelled
func (p *Project) MayCancel() bool {
	return p.Status == ProjectStatusProspect || p.Status == ProjectStatusActive
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID              uint            `json:"id"`
	CustomerID      uint            `json:"customer_id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	EstimatedTotal  decimal.Decimal `json:"estimated_total"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaidTotal       decimal.Decimal `json:"paid_total"`
	SpentTotal      decimal.Decimal `json:"spent_total"`
	Status          string          `json:"status"`
	StartDate       *time.Time      `json:"start_date"`
	EndDate         *time.Time      `json:"end_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToResponse converts Project to ProjectResponse. Paid and spent totals are
// derived from loaded transactions; both zero when the association is not loaded.
func (p *Project) ToResponse() ProjectResponse {
	paid := decimal.Zero
	spent := decimal.Zero
	for _, t := range p.Transactions {
		switch t.TransactionType {
		case TransactionTypeCredit:
			paid = paid.Add(t.Amount)
		case TransactionTypeDebit:
			spent = spent.Add(t.Amount)
		}
	}

	resp := ProjectResponse{
		ID:              p.ID,
		CustomerID:      p.CustomerID,
		Name:            p.Name,
		Description:     p.Description,
		EstimatedTotal:  p.EstimatedTotal,
		RemainingAmount: p.RemainingAmount,
		PaidTotal:       paid,
		SpentTotal:      spent,
		Status:          p.Status,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		CreatedAt:       p.CreatedAt,
	}
	if p.Customer.ID != 0 {
		resp.CustomerName = p.Customer.Name
	}
	return resp
}
