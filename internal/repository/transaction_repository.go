package repository

import (
	"context"
	"strings"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"

	"gorm.io/gorm"
)

// TransactionQuery extends ListQuery with transaction-specific filters
type TransactionQuery struct {
	*ListQuery
	ProjectID  uint
	CustomerID uint
	EmployeeID uint
	Type       string
	FundSource string
}

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Transaction, error)
	FindByAdvance(ctx context.Context, advanceID uint) ([]models.Transaction, error)
	FindSince(ctx context.Context, from time.Time) ([]models.Transaction, error)
	Create(ctx context.Context, txn *models.Transaction) error
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *TransactionQuery) ([]models.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Employee").
		First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) FindByAdvance(ctx context.Context, advanceID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("advance_id = ?", advanceID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) FindSince(ctx context.Context, from time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", from).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

func (r *transactionRepository) List(ctx context.Context, query *TransactionQuery) ([]models.Transaction, int64, error) {
	var txns []models.Transaction
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Transaction{})

	if query.ProjectID > 0 {
		db = db.Where("transactions.project_id = ?", query.ProjectID)
	}
	if query.CustomerID > 0 {
		db = db.Where("transactions.customer_id = ?", query.CustomerID)
	}
	if query.EmployeeID > 0 {
		db = db.Where("transactions.employee_id = ?", query.EmployeeID)
	}
	if query.Type != "" {
		db = db.Where("transactions.transaction_type = ?", query.Type)
	}
	if query.FundSource != "" {
		db = db.Where("transactions.fund_source = ?", query.FundSource)
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("transactions.reason ILIKE ? OR transactions.payment_mode ILIKE ?", search, search)
	}
	if query.Filters != nil {
		if val, ok := query.Filters["created_from"]; ok && val != "" {
			db = db.Where("transactions.created_at >= ?", val)
		}
		if val, ok := query.Filters["created_to"]; ok && val != "" {
			// Include the full day when only a date is provided
			if len(val) == 10 && !strings.Contains(val, " ") {
				val = val + " 23:59:59"
			}
			db = db.Where("transactions.created_at <= ?", val)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Project").
		Preload("Employee").
		Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&txns).Error
	return txns, total, err
}
