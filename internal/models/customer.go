package models

import (
	"time"
)

// Customer represents a client of the furnishing business
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   *string   `gorm:"type:text" json:"address"`
	Phone     *string   `gorm:"size:30" json:"phone"`
	Email     *string   `json:"email"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations. Deleting a customer removes its projects and transactions.
	Projects     []Project     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// CustomerResponse is the JSON response format for customers
type CustomerResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address"`
	Phone        *string   `json:"phone"`
	Email        *string   `json:"email"`
	Notes        *string   `json:"notes"`
	ProjectCount int       `json:"project_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts Customer to CustomerResponse
func (c *Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		Notes:        c.Notes,
		ProjectCount: len(c.Projects),
		CreatedAt:    c.CreatedAt,
	}
}
