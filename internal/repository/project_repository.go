package repository

import (
	"context"

	"github.com/casaledger/casaledger-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrProjectMissing is returned when a balance adjustment matches no project
// row. Given the foreign key on transactions this indicates corrupted state,
// and callers must abort the enclosing unit of work.
var ErrProjectMissing = gorm.ErrRecordNotFound

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	FindByIDWithTransactions(ctx context.Context, id uint) (*models.Project, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Project, int64, error)
	AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Customer").First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByIDWithTransactions(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

func (r *projectRepository) List(ctx context.Context, query *ListQuery) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Project{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("projects.name ILIKE ? OR projects.description ILIKE ?", search, search)
	}
	if query.Filters["status"] != "" {
		db = db.Where("projects.status = ?", query.Filters["status"])
	}
	if query.Filters["customer_id"] != "" {
		db = db.Where("projects.customer_id = ?", query.Filters["customer_id"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Customer").
		Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&projects).Error
	return projects, total, err
}

// AdjustBalance applies delta to the project's remaining amount in a single
// UPDATE, relying on row-level locking for serialization of concurrent
// writers. Zero affected rows means the project does not exist and surfaces
// as ErrProjectMissing.
func (r *projectRepository) AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("remaining_amount", gorm.Expr("remaining_amount + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectMissing
	}
	return nil
}
