package repository

import (
	"context"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"

	"gorm.io/gorm"
)

// AdvanceRepository defines the interface for petty-cash advance data access
type AdvanceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.PettyCashAdvance, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]models.PettyCashAdvance, error)
	FindOpenOlderThan(ctx context.Context, cutoff time.Time) ([]models.PettyCashAdvance, error)
	Create(ctx context.Context, advance *models.PettyCashAdvance) error
	Update(ctx context.Context, advance *models.PettyCashAdvance) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.PettyCashAdvance, int64, error)
}

type advanceRepository struct {
	db *gorm.DB
}

// NewAdvanceRepository creates a new advance repository
func NewAdvanceRepository(db *gorm.DB) AdvanceRepository {
	return &advanceRepository{db: db}
}

func (r *advanceRepository) FindByID(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
	var advance models.PettyCashAdvance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Project").
		First(&advance, id).Error
	if err != nil {
		return nil, err
	}
	return &advance, nil
}

func (r *advanceRepository) FindByEmployee(ctx context.Context, employeeID uint) ([]models.PettyCashAdvance, error) {
	var advances []models.PettyCashAdvance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&advances).Error
	return advances, err
}

func (r *advanceRepository) FindOpenOlderThan(ctx context.Context, cutoff time.Time) ([]models.PettyCashAdvance, error) {
	var advances []models.PettyCashAdvance
	err := r.db.WithContext(ctx).
		Where("status <> ? AND created_at < ?", models.AdvanceStatusClosed, cutoff).
		Preload("Employee").
		Order("created_at ASC").
		Find(&advances).Error
	return advances, err
}

func (r *advanceRepository) Create(ctx context.Context, advance *models.PettyCashAdvance) error {
	return r.db.WithContext(ctx).Create(advance).Error
}

func (r *advanceRepository) Update(ctx context.Context, advance *models.PettyCashAdvance) error {
	return r.db.WithContext(ctx).Save(advance).Error
}

func (r *advanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PettyCashAdvance{}, id).Error
}

func (r *advanceRepository) List(ctx context.Context, query *ListQuery) ([]models.PettyCashAdvance, int64, error) {
	var advances []models.PettyCashAdvance
	var total int64

	db := r.db.WithContext(ctx).Model(&models.PettyCashAdvance{})

	if query.Filters["status"] != "" {
		db = db.Where("petty_cash_advances.status = ?", query.Filters["status"])
	}
	if query.Filters["employee_id"] != "" {
		db = db.Where("petty_cash_advances.employee_id = ?", query.Filters["employee_id"])
	}
	if query.Filters["project_id"] != "" {
		db = db.Where("petty_cash_advances.project_id = ?", query.Filters["project_id"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Employee").
		Preload("Project").
		Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&advances).Error
	return advances, total, err
}
