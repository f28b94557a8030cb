package repository

import (
	"context"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsRepository aggregates raw rows into dashboard figures. All sums
// are computed in SQL over the live tables; nothing here is persisted.
type AnalyticsRepository interface {
	FundTotals(ctx context.Context, fundSource string) (models.FundTotals, error)
	ExpensesSince(ctx context.Context, from time.Time) (decimal.Decimal, error)
	Counts(ctx context.Context) (openAdvances, activeProjects, customers, transactions int64, err error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) FundTotals(ctx context.Context, fundSource string) (models.FundTotals, error) {
	var result struct {
		Credits decimal.Decimal
		Debits  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select(`
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN amount ELSE 0 END), 0) AS credits,
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN amount ELSE 0 END), 0) AS debits`,
			models.TransactionTypeCredit, models.TransactionTypeDebit).
		Where("fund_source = ?", fundSource).
		Scan(&result).Error
	if err != nil {
		return models.FundTotals{}, err
	}
	return models.FundTotals{Credits: result.Credits, Debits: result.Debits}, nil
}

func (r *analyticsRepository) ExpensesSince(ctx context.Context, from time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("transaction_type = ? AND created_at >= ?", models.TransactionTypeDebit, from).
		Scan(&result).Error
	return result.Total, err
}

func (r *analyticsRepository) Counts(ctx context.Context) (openAdvances, activeProjects, customers, transactions int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.PettyCashAdvance{}).
		Where("status <> ?", models.AdvanceStatusClosed).
		Count(&openAdvances).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusActive).
		Count(&activeProjects).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&models.Customer{}).Count(&customers).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&transactions).Error
	return
}
