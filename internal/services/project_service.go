package services

import (
	"context"
	"errors"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/casaledger/casaledger-api/internal/statemachine"

	"github.com/google/uuid"
)

// ProjectService manages projects. Creation seeds the remaining amount from
// the estimate; status changes go through the project state machine.
type ProjectService struct {
	repo repository.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) FindByIDWithTransactions(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.FindByIDWithTransactions(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, query *repository.ListQuery) ([]models.Project, int64, error) {
	return s.repo.List(ctx, query)
}

// Create persists a new project. The remaining amount always starts equal to
// the estimated total; whatever the caller supplied for it is discarded.
func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	if project.Name == "" {
		return errors.New("el nombre del proyecto es requerido")
	}
	if project.CustomerID == 0 {
		return errors.New("el cliente es requerido")
	}
	if project.EstimatedTotal.IsNegative() {
		return errors.New("el total estimado no puede ser negativo")
	}

	project.RemainingAmount = project.EstimatedTotal
	if project.GUID == "" {
		project.GUID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusProspect
	}

	return s.repo.Create(ctx, project)
}

// Update modifies a project's descriptive fields. The remaining amount and
// the estimate are never taken from the caller: the estimate is fixed at
// creation and the remaining amount belongs to the ledger service alone.
func (s *ProjectService) Update(ctx context.Context, project *models.Project) error {
	existing, err := s.repo.FindByID(ctx, project.ID)
	if err != nil {
		return ErrNotFound
	}

	existing.Name = project.Name
	existing.Description = project.Description
	existing.StartDate = project.StartDate
	existing.EndDate = project.EndDate
	if project.CustomerID != 0 {
		existing.CustomerID = project.CustomerID
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	*project = *existing
	return nil
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Activate moves a prospect project to active
func (s *ProjectService) Activate(ctx context.Context, id uint) (*models.Project, error) {
	return s.transition(ctx, id, func(fsm *statemachine.ProjectFSM) error {
		return fsm.Activate(ctx)
	})
}

// Complete moves an active project to completed
func (s *ProjectService) Complete(ctx context.Context, id uint) (*models.Project, error) {
	return s.transition(ctx, id, func(fsm *statemachine.ProjectFSM) error {
		return fsm.Complete(ctx)
	})
}

// Cancel moves a prospect or active project to cancelled
func (s *ProjectService) Cancel(ctx context.Context, id uint) (*models.Project, error) {
	return s.transition(ctx, id, func(fsm *statemachine.ProjectFSM) error {
		return fsm.Cancel(ctx)
	})
}

func (s *ProjectService) transition(ctx context.Context, id uint, event func(*statemachine.ProjectFSM) error) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := event(statemachine.NewProjectFSM(project)); err != nil {
		return nil, ErrInvalidState
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
