package services

import (
	"context"
	"errors"
	"testing"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock AdvanceRepository (using embedding to avoid implementing all methods)
type mockAdvanceRepository struct {
	repository.AdvanceRepository
	mockFindByID func(ctx context.Context, id uint) (*models.PettyCashAdvance, error)
	mockUpdate   func(ctx context.Context, advance *models.PettyCashAdvance) error
	created      *models.PettyCashAdvance
	updated      *models.PettyCashAdvance
}

func (m *mockAdvanceRepository) FindByID(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, ErrNotFound
}
func (m *mockAdvanceRepository) Create(ctx context.Context, advance *models.PettyCashAdvance) error {
	advance.ID = 1
	m.created = advance
	return nil
}
func (m *mockAdvanceRepository) Update(ctx context.Context, advance *models.PettyCashAdvance) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, advance)
	}
	m.updated = advance
	return nil
}

func newAdvanceFixture() (*AdvanceService, *mockAdvanceRepository, *mockProjectRepository, *mockActivityRepository) {
	advRepo := &mockAdvanceRepository{}
	txnRepo := &mockTransactionRepository{}
	projRepo := &mockProjectRepository{}
	actRepo := &mockActivityRepository{}
	atomic := &mockAtomic{repos: &repository.Repositories{
		Transaction: txnRepo,
		Project:     projRepo,
		Activity:    actRepo,
		Advance:     advRepo,
	}}
	// Undo recorded writes when a unit of work fails, like a real rollback
	atomic.onRollback = func() {
		projRepo.adjustments = nil
		actRepo.entries = nil
		advRepo.updated = nil
	}
	ledgerSvc := NewLedgerService(txnRepo, projRepo, atomic)
	activitySvc := NewActivityService(actRepo)
	svc := NewAdvanceService(advRepo, ledgerSvc, activitySvc, atomic)
	return svc, advRepo, projRepo, actRepo
}

func TestAdvanceCreate_StartsOpenAndUnspent(t *testing.T) {
	svc, advRepo, _, _ := newAdvanceFixture()

	advance := &models.PettyCashAdvance{
		EmployeeID:    2,
		AdvanceAmount: decimal.NewFromInt(5000),
		// Client-supplied totals are discarded
		ExpenseTotal:   decimal.NewFromInt(100),
		ReturnedAmount: decimal.NewFromInt(100),
	}

	err := svc.Create(context.Background(), advance)
	require.NoError(t, err)
	require.NotNil(t, advRepo.created)

	assert.Equal(t, models.AdvanceStatusOpen, advance.Status)
	assert.True(t, advance.ExpenseTotal.IsZero())
	assert.True(t, advance.ReturnedAmount.IsZero())
	assert.True(t, advance.Outstanding().Equal(decimal.NewFromInt(5000)))
}

func TestAdvanceCreate_Validation(t *testing.T) {
	svc, advRepo, _, _ := newAdvanceFixture()
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &models.PettyCashAdvance{AdvanceAmount: decimal.NewFromInt(100)}))
	assert.Error(t, svc.Create(ctx, &models.PettyCashAdvance{EmployeeID: 2}))
	assert.Error(t, svc.Create(ctx, &models.PettyCashAdvance{EmployeeID: 2, AdvanceAmount: decimal.NewFromInt(-5)}))
	assert.Nil(t, advRepo.created)
}

func TestRegisterExpense_ProjectLinkedCreatesDebit(t *testing.T) {
	svc, advRepo, projRepo, _ := newAdvanceFixture()

	projectID := uint(4)
	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			ProjectID:     &projectID,
			AdvanceAmount: decimal.NewFromInt(5000),
			Status:        models.AdvanceStatusOpen,
		}, nil
	}

	advance, err := svc.RegisterExpense(context.Background(), 1, decimal.NewFromInt(1200), models.FundSourceCash, "Compra de herrajes")
	require.NoError(t, err)

	// The expense landed on the project as a debit
	require.Len(t, projRepo.adjustments, 1)
	assert.Equal(t, projectID, projRepo.adjustments[0].projectID)
	assert.True(t, projRepo.adjustments[0].delta.Equal(decimal.NewFromInt(1200)))

	assert.True(t, advance.ExpenseTotal.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, models.AdvanceStatusPartiallyReturned, advance.Status)
	assert.True(t, advance.Outstanding().Equal(decimal.NewFromInt(3800)))
}

func TestRegisterExpense_WithoutProjectSkipsLedger(t *testing.T) {
	svc, advRepo, projRepo, _ := newAdvanceFixture()

	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			AdvanceAmount: decimal.NewFromInt(5000),
			Status:        models.AdvanceStatusOpen,
		}, nil
	}

	advance, err := svc.RegisterExpense(context.Background(), 1, decimal.NewFromInt(500), models.FundSourceCash, "Viáticos")
	require.NoError(t, err)

	assert.Empty(t, projRepo.adjustments)
	assert.True(t, advance.ExpenseTotal.Equal(decimal.NewFromInt(500)))
}

func TestRegisterExpense_FailedAdvanceUpdateLeavesNoLedgerWrite(t *testing.T) {
	svc, advRepo, projRepo, actRepo := newAdvanceFixture()

	projectID := uint(3)
	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			ProjectID:     &projectID,
			AdvanceAmount: decimal.NewFromInt(5000),
			Status:        models.AdvanceStatusOpen,
		}, nil
	}
	advRepo.mockUpdate = func(ctx context.Context, advance *models.PettyCashAdvance) error {
		return errors.New("conflicto de actualización")
	}

	_, err := svc.RegisterExpense(context.Background(), 1, decimal.NewFromInt(1200), models.FundSourceCash, "Compra de herrajes")
	require.Error(t, err)

	// The debit and its balance adjustment roll back with the failed update
	assert.Empty(t, projRepo.adjustments)
	assert.Empty(t, actRepo.entries)
}

func TestRegisterExpense_CannotExceedOutstanding(t *testing.T) {
	svc, advRepo, projRepo, _ := newAdvanceFixture()

	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			AdvanceAmount: decimal.NewFromInt(1000),
			ExpenseTotal:  decimal.NewFromInt(800),
			Status:        models.AdvanceStatusPartiallyReturned,
		}, nil
	}

	_, err := svc.RegisterExpense(context.Background(), 1, decimal.NewFromInt(300), models.FundSourceCash, "Exceso")
	assert.Error(t, err)
	assert.Empty(t, projRepo.adjustments)
	assert.Nil(t, advRepo.updated)
}

func TestRegisterReturn(t *testing.T) {
	svc, advRepo, _, _ := newAdvanceFixture()

	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			AdvanceAmount: decimal.NewFromInt(1000),
			ExpenseTotal:  decimal.NewFromInt(700),
			Status:        models.AdvanceStatusPartiallyReturned,
		}, nil
	}

	advance, err := svc.RegisterReturn(context.Background(), 1, decimal.NewFromInt(300))
	require.NoError(t, err)

	assert.True(t, advance.ReturnedAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, advance.Outstanding().IsZero())
}

func TestClose_RejectsWhileOutstanding(t *testing.T) {
	svc, advRepo, _, actRepo := newAdvanceFixture()

	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			AdvanceAmount: decimal.NewFromInt(1000),
			ExpenseTotal:  decimal.NewFromInt(600),
			Status:        models.AdvanceStatusPartiallyReturned,
		}, nil
	}

	_, err := svc.Close(context.Background(), 1, 9)
	assert.Error(t, err)
	assert.Nil(t, advRepo.updated)
	assert.Empty(t, actRepo.entries)
}

func TestClose_FullyReconciled(t *testing.T) {
	svc, advRepo, _, actRepo := newAdvanceFixture()

	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:             id,
			EmployeeID:     2,
			AdvanceAmount:  decimal.NewFromInt(1000),
			ExpenseTotal:   decimal.NewFromInt(700),
			ReturnedAmount: decimal.NewFromInt(300),
			Status:         models.AdvanceStatusPartiallyReturned,
		}, nil
	}

	advance, err := svc.Close(context.Background(), 1, 9)
	require.NoError(t, err)

	assert.Equal(t, models.AdvanceStatusClosed, advance.Status)

	// Closing leaves a user-attributed activity entry
	require.Len(t, actRepo.entries, 1)
	assert.Equal(t, models.ActionAdvanceClosed, actRepo.entries[0].Action)
	assert.Equal(t, models.ActorTypeUser, actRepo.entries[0].ActorType)
	assert.Equal(t, uint(9), actRepo.entries[0].ActorID)
}

func TestClose_AlreadyClosed(t *testing.T) {
	svc, advRepo, _, _ := newAdvanceFixture()

	advRepo.mockFindByID = func(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
		return &models.PettyCashAdvance{
			ID:            id,
			EmployeeID:    2,
			AdvanceAmount: decimal.NewFromInt(1000),
			ExpenseTotal:  decimal.NewFromInt(1000),
			Status:        models.AdvanceStatusClosed,
		}, nil
	}

	_, err := svc.Close(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrInvalidState)
}
