package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService is the single write path for transactions and the project
// balances derived from them. Every create, amend and void adjusts the owning
// project's remaining amount and appends one activity log entry, all inside
// one database transaction. Nothing else may write remaining_amount.
type LedgerService struct {
	txnRepo     repository.TransactionRepository
	projectRepo repository.ProjectRepository
	atomic      repository.AtomicRunner
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	txnRepo repository.TransactionRepository,
	projectRepo repository.ProjectRepository,
	atomic repository.AtomicRunner,
) *LedgerService {
	return &LedgerService{
		txnRepo:     txnRepo,
		projectRepo: projectRepo,
		atomic:      atomic,
	}
}

// balanceAudit is the payload stored with every project_balance_updated entry
type balanceAudit struct {
	ProjectID       uint             `json:"project_id"`
	OldProjectID    uint             `json:"old_project_id,omitempty"`
	TransactionID   uint             `json:"transaction_id"`
	TransactionType string           `json:"transaction_type"`
	Amount          decimal.Decimal  `json:"amount"`
	OldAmount       *decimal.Decimal `json:"old_amount,omitempty"`
	Delta           decimal.Decimal  `json:"delta"`
	Deleted         bool             `json:"deleted,omitempty"`
}

// FindByID retrieves a single transaction
func (s *LedgerService) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	return s.txnRepo.FindByID(ctx, id)
}

// List retrieves transactions with filters
func (s *LedgerService) List(ctx context.Context, query *repository.TransactionQuery) ([]models.Transaction, int64, error) {
	return s.txnRepo.List(ctx, query)
}

// FindByProject retrieves all transactions for a project, oldest first
func (s *LedgerService) FindByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	return s.txnRepo.FindByProject(ctx, projectID)
}

// FindSince retrieves all transactions created on or after from, oldest first
func (s *LedgerService) FindSince(ctx context.Context, from time.Time) ([]models.Transaction, error) {
	return s.txnRepo.FindSince(ctx, from)
}

// Record persists a new transaction and applies its delta to the owning
// project: -amount for credits, +amount for debits.
func (s *LedgerService) Record(ctx context.Context, txn *models.Transaction) error {
	return s.atomic.Atomic(ctx, func(tx *repository.Repositories) error {
		return s.recordIn(ctx, tx, txn)
	})
}

// recordIn writes txn and its balance effects against an already-open unit of
// work, so callers can bundle the ledger write with their own writes.
func (s *LedgerService) recordIn(ctx context.Context, tx *repository.Repositories, txn *models.Transaction) error {
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if txn.GUID == "" {
		txn.GUID = uuid.New().String()
	}

	// Denormalize the owning customer from the project
	project, err := tx.Project.FindByID(ctx, txn.ProjectID)
	if err != nil {
		return fmt.Errorf("proyecto no encontrado: %w", err)
	}
	txn.CustomerID = project.CustomerID

	if err := tx.Transaction.Create(ctx, txn); err != nil {
		return err
	}

	delta := txn.BalanceDelta()
	if err := s.adjust(ctx, tx, txn.ProjectID, delta); err != nil {
		return err
	}

	return s.appendAudit(ctx, tx, balanceAudit{
		ProjectID:       txn.ProjectID,
		TransactionID:   txn.ID,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		Delta:           delta,
	})
}

// Amend updates an existing transaction and applies the net effect of the
// change as a single combined adjustment. When the amendment moves the
// transaction to a different project, the reversal lands on the old project
// and the new effect on the new one.
func (s *LedgerService) Amend(ctx context.Context, updated *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(updated); err != nil {
		return nil, err
	}

	var result *models.Transaction
	err := s.atomic.Atomic(ctx, func(tx *repository.Repositories) error {
		old, err := tx.Transaction.FindByID(ctx, updated.ID)
		if err != nil {
			return ErrNotFound
		}

		updated.GUID = old.GUID
		updated.CreatedAt = old.CreatedAt
		updated.ReceiptPath = old.ReceiptPath
		if updated.ProjectID == old.ProjectID {
			updated.CustomerID = old.CustomerID
		} else {
			project, err := tx.Project.FindByID(ctx, updated.ProjectID)
			if err != nil {
				return fmt.Errorf("proyecto no encontrado: %w", err)
			}
			updated.CustomerID = project.CustomerID
		}

		if err := tx.Transaction.Update(ctx, updated); err != nil {
			return err
		}

		audit := balanceAudit{
			ProjectID:       updated.ProjectID,
			TransactionID:   updated.ID,
			TransactionType: updated.TransactionType,
			Amount:          updated.Amount,
			OldAmount:       &old.Amount,
		}

		if updated.ProjectID == old.ProjectID {
			// Reversal of the old state and the new effect, as one write
			delta := old.ReversalDelta().Add(updated.BalanceDelta())
			if err := s.adjust(ctx, tx, updated.ProjectID, delta); err != nil {
				return err
			}
			audit.Delta = delta
		} else {
			if err := s.adjust(ctx, tx, old.ProjectID, old.ReversalDelta()); err != nil {
				return err
			}
			if err := s.adjust(ctx, tx, updated.ProjectID, updated.BalanceDelta()); err != nil {
				return err
			}
			audit.OldProjectID = old.ProjectID
			audit.Delta = updated.BalanceDelta()
		}

		result = updated
		return s.appendAudit(ctx, tx, audit)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Void removes a transaction and applies the exact reversal of its
// create-time delta to the project it belonged to.
func (s *LedgerService) Void(ctx context.Context, id uint) error {
	return s.atomic.Atomic(ctx, func(tx *repository.Repositories) error {
		txn, err := tx.Transaction.FindByID(ctx, id)
		if err != nil {
			return ErrNotFound
		}

		if err := tx.Transaction.Delete(ctx, txn.ID); err != nil {
			return err
		}

		delta := txn.ReversalDelta()
		if err := s.adjust(ctx, tx, txn.ProjectID, delta); err != nil {
			return err
		}

		return s.appendAudit(ctx, tx, balanceAudit{
			ProjectID:       txn.ProjectID,
			TransactionID:   txn.ID,
			TransactionType: txn.TransactionType,
			Amount:          txn.Amount,
			Delta:           delta,
			Deleted:         true,
		})
	})
}

// AttachReceipt stores the path of an uploaded receipt on the transaction.
// Does not touch amounts, so it bypasses the balance path on purpose.
func (s *LedgerService) AttachReceipt(ctx context.Context, id uint, path string) (*models.Transaction, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	txn.ReceiptPath = &path
	if err := s.txnRepo.Update(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// adjust applies delta to a project balance and escalates a missing project
// to a consistency failure, aborting the enclosing unit of work.
func (s *LedgerService) adjust(ctx context.Context, tx *repository.Repositories, projectID uint, delta decimal.Decimal) error {
	if err := tx.Project.AdjustBalance(ctx, projectID, delta); err != nil {
		if errors.Is(err, repository.ErrProjectMissing) {
			sentry.CaptureException(fmt.Errorf("%w: project_id=%d", ErrBalanceConsistency, projectID))
			return ErrBalanceConsistency
		}
		return err
	}
	return nil
}

func (s *LedgerService) appendAudit(ctx context.Context, tx *repository.Repositories, payload balanceAudit) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Activity.Create(ctx, &models.ActivityLog{
		ActorType: models.ActorTypeSystem,
		Action:    models.ActionProjectBalanceUpdated,
		Data:      string(data),
	})
}

func validateTransaction(txn *models.Transaction) error {
	if txn.ProjectID == 0 {
		return errors.New("el proyecto es requerido")
	}
	if !models.IsValidType(txn.TransactionType) {
		return errors.New("tipo de transacción inválido")
	}
	if !models.IsValidFundSource(txn.FundSource) {
		return errors.New("fuente de fondos inválida")
	}
	if txn.Amount.IsNegative() {
		return errors.New("el monto no puede ser negativo")
	}
	if txn.Reason == "" {
		return errors.New("el motivo es requerido")
	}
	return nil
}
