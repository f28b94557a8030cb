package repository

import (
	"context"

	"github.com/casaledger/casaledger-api/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository defines the interface for the append-only activity
// log. There is deliberately no update or delete operation.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, query *ListQuery) ([]models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context, query *ListQuery) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ActivityLog{})

	if query.Filters["action"] != "" {
		db = db.Where("action = ?", query.Filters["action"])
	}
	if query.Filters["actor_type"] != "" {
		db = db.Where("actor_type = ?", query.Filters["actor_type"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&entries).Error
	return entries, total, err
}
