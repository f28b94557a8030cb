package services

import (
	"context"
	"encoding/json"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
)

// ActivityService writes and lists append-only activity log entries
type ActivityService struct {
	repo repository.ActivityLogRepository
}

// NewActivityService creates a new activity service
func NewActivityService(repo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogUser records an entry for an action performed by an authenticated user
func (s *ActivityService) LogUser(ctx context.Context, userID uint, action string, payload any) error {
	return s.log(ctx, models.ActorTypeUser, userID, action, payload)
}

// LogSystem records an entry for an automatic system action
func (s *ActivityService) LogSystem(ctx context.Context, action string, payload any) error {
	return s.log(ctx, models.ActorTypeSystem, 0, action, payload)
}

func (s *ActivityService) log(ctx context.Context, actorType string, actorID uint, action string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	entry := &models.ActivityLog{
		ActorType: actorType,
		ActorID:   actorID,
		Action:    action,
		Data:      string(data),
	}
	return s.repo.Create(ctx, entry)
}

// List retrieves activity log entries, newest first
func (s *ActivityService) List(ctx context.Context, query *repository.ListQuery) ([]models.ActivityLog, int64, error) {
	return s.repo.List(ctx, query)
}
