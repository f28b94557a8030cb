package models

import (
	"time"
)

// Employee represents a staff member who can receive petty-cash advances
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"not null" json:"full_name"`
	Department *string   `gorm:"size:100" json:"department"`
	Email      *string   `json:"email"`
	Phone      *string   `gorm:"size:30" json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations. Deleting an employee removes its advances; transactions
	// referencing the employee keep the row and null the link instead.
	Advances []PettyCashAdvance `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"advances,omitempty"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// EmployeeResponse is the JSON response format for employees
type EmployeeResponse struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"full_name"`
	Department   *string   `json:"department"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	OpenAdvances int       `json:"open_advances"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts Employee to EmployeeResponse
func (e *Employee) ToResponse() EmployeeResponse {
	open := 0
	for _, a := range e.Advances {
		if a.Status != AdvanceStatusClosed {
			open++
		}
	}
	return EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Department:   e.Department,
		Email:        e.Email,
		Phone:        e.Phone,
		OpenAdvances: open,
		CreatedAt:    e.CreatedAt,
	}
}
