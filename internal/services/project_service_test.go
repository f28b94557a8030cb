package services

import (
	"context"
	"testing"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectRepoForService struct {
	mockProjectRepository
	created *models.Project
	updated *models.Project
}

func (m *projectRepoForService) Create(ctx context.Context, project *models.Project) error {
	project.ID = 1
	m.created = project
	return nil
}

func (m *projectRepoForService) Update(ctx context.Context, project *models.Project) error {
	m.updated = project
	return nil
}

func TestProjectCreate_SeedsRemainingFromEstimate(t *testing.T) {
	repo := &projectRepoForService{}
	svc := NewProjectService(repo)

	project := &models.Project{
		Name:           "Residencia Altos",
		CustomerID:     3,
		EstimatedTotal: decimal.NewFromInt(150000),
		// A client-supplied remaining amount is discarded
		RemainingAmount: decimal.NewFromInt(999),
	}

	err := svc.Create(context.Background(), project)
	require.NoError(t, err)

	assert.True(t, project.RemainingAmount.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, models.ProjectStatusProspect, project.Status)
	assert.NotEmpty(t, project.GUID)
}

func TestProjectCreate_Validation(t *testing.T) {
	repo := &projectRepoForService{}
	svc := NewProjectService(repo)
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &models.Project{CustomerID: 1}))
	assert.Error(t, svc.Create(ctx, &models.Project{Name: "Sin cliente"}))
	assert.Error(t, svc.Create(ctx, &models.Project{
		Name:           "Estimado negativo",
		CustomerID:     1,
		EstimatedTotal: decimal.NewFromInt(-1),
	}))
	assert.Nil(t, repo.created)
}

func TestProjectUpdate_PreservesFinancialFields(t *testing.T) {
	repo := &projectRepoForService{}
	repo.mockFindByID = func(ctx context.Context, id uint) (*models.Project, error) {
		return &models.Project{
			ID:              id,
			Name:            "Original",
			CustomerID:      3,
			EstimatedTotal:  decimal.NewFromInt(150000),
			RemainingAmount: decimal.NewFromInt(80000),
			Status:          models.ProjectStatusActive,
		}, nil
	}
	svc := NewProjectService(repo)

	update := &models.Project{
		ID:   1,
		Name: "Renombrado",
		// The caller cannot move money through an update
		EstimatedTotal:  decimal.NewFromInt(1),
		RemainingAmount: decimal.NewFromInt(1),
	}

	err := svc.Update(context.Background(), update)
	require.NoError(t, err)
	require.NotNil(t, repo.updated)

	assert.Equal(t, "Renombrado", repo.updated.Name)
	assert.True(t, repo.updated.EstimatedTotal.Equal(decimal.NewFromInt(150000)))
	assert.True(t, repo.updated.RemainingAmount.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, models.ProjectStatusActive, repo.updated.Status)
}

func TestProjectTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		transition func(svc *ProjectService, ctx context.Context) (*models.Project, error)
		wantStatus string
		wantErr    bool
	}{
		{
			name: "activate prospect",
			from: models.ProjectStatusProspect,
			transition: func(svc *ProjectService, ctx context.Context) (*models.Project, error) {
				return svc.Activate(ctx, 1)
			},
			wantStatus: models.ProjectStatusActive,
		},
		{
			name: "complete active",
			from: models.ProjectStatusActive,
			transition: func(svc *ProjectService, ctx context.Context) (*models.Project, error) {
				return svc.Complete(ctx, 1)
			},
			wantStatus: models.ProjectStatusCompleted,
		},
		{
			name: "cancel prospect",
			from: models.ProjectStatusProspect,
			transition: func(svc *ProjectService, ctx context.Context) (*models.Project, error) {
				return svc.Cancel(ctx, 1)
			},
			wantStatus: models.ProjectStatusCancelled,
		},
		{
			name: "complete prospect rejected",
			from: models.ProjectStatusProspect,
			transition: func(svc *ProjectService, ctx context.Context) (*models.Project, error) {
				return svc.Complete(ctx, 1)
			},
			wantErr: true,
		},
		{
			name: "activate completed rejected",
			from: models.ProjectStatusCompleted,
			transition: func(svc *ProjectService, ctx context.Context) (*models.Project, error) {
				return svc.Activate(ctx, 1)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &projectRepoForService{}
			repo.mockFindByID = func(ctx context.Context, id uint) (*models.Project, error) {
				return &models.Project{ID: id, Name: "P", CustomerID: 1, Status: tt.from}, nil
			}
			svc := NewProjectService(repo)

			project, err := tt.transition(svc, context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, project.Status)
		})
	}
}
