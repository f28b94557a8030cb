package database

import (
	"fmt"

	"github.com/casaledger/casaledger-api/internal/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all entities. Order matters for
// the foreign key constraints: owners before dependents.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Customer{},
		&models.Employee{},
		&models.Project{},
		&models.PettyCashAdvance{},
		&models.Transaction{},
		&models.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Partial index for the open-advance reminder scan; gorm tags cannot
	// express the WHERE clause.
	err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_advances_open_created_at
		ON petty_cash_advances (created_at) WHERE status <> 'closed'`).Error
	if err != nil {
		return fmt.Errorf("failed to create partial indexes: %w", err)
	}
	return nil
}
