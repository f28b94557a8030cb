package services

import (
	"context"
	"errors"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/casaledger/casaledger-api/internal/statemachine"
	"github.com/casaledger/casaledger-api/pkg/logger"

	"github.com/shopspring/decimal"
)

// AdvanceService manages petty-cash advances and their reconciliation.
// Expenses registered against a project-linked advance become debit
// transactions through the ledger service, so project balances stay
// consistent with petty-cash spending.
type AdvanceService struct {
	repo        repository.AdvanceRepository
	ledgerSvc   *LedgerService
	activitySvc *ActivityService
	atomic      repository.AtomicRunner
}

// NewAdvanceService creates a new advance service
func NewAdvanceService(repo repository.AdvanceRepository, ledgerSvc *LedgerService, activitySvc *ActivityService, atomic repository.AtomicRunner) *AdvanceService {
	return &AdvanceService{
		repo:        repo,
		ledgerSvc:   ledgerSvc,
		activitySvc: activitySvc,
		atomic:      atomic,
	}
}

func (s *AdvanceService) FindByID(ctx context.Context, id uint) (*models.PettyCashAdvance, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AdvanceService) List(ctx context.Context, query *repository.ListQuery) ([]models.PettyCashAdvance, int64, error) {
	return s.repo.List(ctx, query)
}

// FindOpenOlderThan retrieves unreconciled advances handed out before cutoff,
// used by the reminder job.
func (s *AdvanceService) FindOpenOlderThan(ctx context.Context, cutoff time.Time) ([]models.PettyCashAdvance, error) {
	return s.repo.FindOpenOlderThan(ctx, cutoff)
}

func (s *AdvanceService) Create(ctx context.Context, advance *models.PettyCashAdvance) error {
	if advance.EmployeeID == 0 {
		return errors.New("el empleado es requerido")
	}
	if advance.AdvanceAmount.IsNegative() || advance.AdvanceAmount.IsZero() {
		return errors.New("el monto del anticipo debe ser mayor a cero")
	}

	advance.ExpenseTotal = decimal.Zero
	advance.ReturnedAmount = decimal.Zero
	advance.Status = models.AdvanceStatusOpen
	return s.repo.Create(ctx, advance)
}

// RegisterExpense records spending out of the advance. When the advance is
// tied to a project the expense also becomes a debit transaction through the
// ledger service, carrying the employee and advance references.
func (s *AdvanceService) RegisterExpense(ctx context.Context, id uint, amount decimal.Decimal, fundSource, reason string) (*models.PettyCashAdvance, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, errors.New("el monto del gasto debe ser mayor a cero")
	}

	advance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if advance.IsClosed() {
		return nil, ErrInvalidState
	}
	if amount.GreaterThan(advance.Outstanding()) {
		return nil, errors.New("el gasto excede el saldo pendiente del anticipo")
	}

	advance.ExpenseTotal = advance.ExpenseTotal.Add(amount)
	if err := statemachine.NewAdvanceFSM(advance).Reconcile(ctx); err != nil {
		return nil, ErrInvalidState
	}

	// The debit and the advance update commit or roll back together
	err = s.atomic.Atomic(ctx, func(tx *repository.Repositories) error {
		if advance.ProjectID != nil {
			mode := "petty_cash"
			txn := &models.Transaction{
				ProjectID:       *advance.ProjectID,
				TransactionType: models.TransactionTypeDebit,
				FundSource:      fundSource,
				Amount:          amount,
				PaymentMode:     &mode,
				Reason:          reason,
				EmployeeID:      &advance.EmployeeID,
				AdvanceID:       &advance.ID,
			}
			if err := s.ledgerSvc.recordIn(ctx, tx, txn); err != nil {
				return err
			}
		}
		return tx.Advance.Update(ctx, advance)
	})
	if err != nil {
		return nil, err
	}
	return advance, nil
}

// RegisterReturn records unspent cash handed back by the employee
func (s *AdvanceService) RegisterReturn(ctx context.Context, id uint, amount decimal.Decimal) (*models.PettyCashAdvance, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, errors.New("el monto devuelto debe ser mayor a cero")
	}

	advance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if advance.IsClosed() {
		return nil, ErrInvalidState
	}
	if amount.GreaterThan(advance.Outstanding()) {
		return nil, errors.New("la devolución excede el saldo pendiente del anticipo")
	}

	advance.ReturnedAmount = advance.ReturnedAmount.Add(amount)
	if err := statemachine.NewAdvanceFSM(advance).Reconcile(ctx); err != nil {
		return nil, ErrInvalidState
	}
	if err := s.repo.Update(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}

// Close reconciles the advance. It only succeeds when expenses plus returns
// equal the advance amount exactly; anything else is rejected before any
// write happens.
func (s *AdvanceService) Close(ctx context.Context, id uint, actorID uint) (*models.PettyCashAdvance, error) {
	advance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if advance.IsClosed() {
		return nil, ErrInvalidState
	}
	if !advance.Outstanding().IsZero() {
		return nil, errors.New("gastos más devoluciones deben igualar el monto del anticipo")
	}

	if err := statemachine.NewAdvanceFSM(advance).Close(ctx); err != nil {
		return nil, ErrInvalidState
	}
	if err := s.repo.Update(ctx, advance); err != nil {
		return nil, err
	}

	if err := s.activitySvc.LogUser(ctx, actorID, models.ActionAdvanceClosed, map[string]any{
		"advance_id":      advance.ID,
		"employee_id":     advance.EmployeeID,
		"advance_amount":  advance.AdvanceAmount,
		"expense_total":   advance.ExpenseTotal,
		"returned_amount": advance.ReturnedAmount,
	}); err != nil {
		logger.Error("Failed to record advance close activity", "advance_id", advance.ID, "error", err)
	}

	return advance, nil
}

func (s *AdvanceService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
