package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Customer    CustomerRepository
	Employee    EmployeeRepository
	Project     ProjectRepository
	Transaction TransactionRepository
	Advance     AdvanceRepository
	Activity    ActivityLogRepository
	User        UserRepository
	RefreshTok  RefreshTokenRepository
	Analytics   AnalyticsRepository

	db *gorm.DB
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:    NewCustomerRepository(db),
		Employee:    NewEmployeeRepository(db),
		Project:     NewProjectRepository(db),
		Transaction: NewTransactionRepository(db),
		Advance:     NewAdvanceRepository(db),
		Activity:    NewActivityLogRepository(db),
		User:        NewUserRepository(db),
		RefreshTok:  NewRefreshTokenRepository(db),
		Analytics:   NewAnalyticsRepository(db),
		db:          db,
	}
}

// AtomicRunner executes a function against a transactional set of
// repositories; the whole function commits or rolls back as one unit.
type AtomicRunner interface {
	Atomic(ctx context.Context, fn func(tx *Repositories) error) error
}

// Atomic runs fn inside a database transaction. Every repository handed to fn
// is bound to that transaction, so multi-table writes commit or roll back
// together.
func (r *Repositories) Atomic(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(NewRepositories(txdb))
	})
}
