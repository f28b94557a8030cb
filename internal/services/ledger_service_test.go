package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock TransactionRepository (using embedding to avoid implementing all methods)
type mockTransactionRepository struct {
	repository.TransactionRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Transaction, error)
	mockCreate   func(ctx context.Context, txn *models.Transaction) error
	mockUpdate   func(ctx context.Context, txn *models.Transaction) error
	mockDelete   func(ctx context.Context, id uint) error
}

func (m *mockTransactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, ErrNotFound
}
func (m *mockTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, txn)
	}
	txn.ID = 1
	return nil
}
func (m *mockTransactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, txn)
	}
	return nil
}
func (m *mockTransactionRepository) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

// Mock ProjectRepository recording every balance adjustment
type balanceAdjustment struct {
	projectID uint
	delta     decimal.Decimal
}

type mockProjectRepository struct {
	repository.ProjectRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Project, error)
	mockAdjust   func(ctx context.Context, id uint, delta decimal.Decimal) error
	adjustments  []balanceAdjustment
}

func (m *mockProjectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Project{ID: id, CustomerID: 7}, nil
}
func (m *mockProjectRepository) AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) error {
	if m.mockAdjust != nil {
		if err := m.mockAdjust(ctx, id, delta); err != nil {
			return err
		}
	}
	m.adjustments = append(m.adjustments, balanceAdjustment{projectID: id, delta: delta})
	return nil
}

// Mock ActivityLogRepository recording appended entries
type mockActivityRepository struct {
	repository.ActivityLogRepository
	entries []models.ActivityLog
}

func (m *mockActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	m.entries = append(m.entries, *entry)
	return nil
}

// mockAtomic hands the same repository set to fn without a real database
// transaction. A failed fn surfaces its error; onRollback lets fixtures undo
// recorded writes the way a real rollback would.
type mockAtomic struct {
	repos      *repository.Repositories
	calls      int
	onRollback func()
}

func (m *mockAtomic) Atomic(ctx context.Context, fn func(tx *repository.Repositories) error) error {
	m.calls++
	if err := fn(m.repos); err != nil {
		if m.onRollback != nil {
			m.onRollback()
		}
		return err
	}
	return nil
}

func newLedgerFixture() (*LedgerService, *mockTransactionRepository, *mockProjectRepository, *mockActivityRepository, *mockAtomic) {
	txnRepo := &mockTransactionRepository{}
	projRepo := &mockProjectRepository{}
	actRepo := &mockActivityRepository{}
	atomic := &mockAtomic{repos: &repository.Repositories{
		Transaction: txnRepo,
		Project:     projRepo,
		Activity:    actRepo,
	}}
	svc := NewLedgerService(txnRepo, projRepo, atomic)
	return svc, txnRepo, projRepo, actRepo, atomic
}

func decodeAudit(t *testing.T, entry models.ActivityLog) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.Data), &payload))
	return payload
}

func TestRecord_CreditLowersRemaining(t *testing.T) {
	svc, _, projRepo, actRepo, atomic := newLedgerFixture()

	txn := &models.Transaction{
		ProjectID:       1,
		TransactionType: models.TransactionTypeCredit,
		FundSource:      models.FundSourceBank,
		Amount:          decimal.NewFromInt(50000),
		Reason:          "Abono inicial",
	}

	err := svc.Record(context.Background(), txn)
	require.NoError(t, err)

	require.Len(t, projRepo.adjustments, 1)
	assert.Equal(t, uint(1), projRepo.adjustments[0].projectID)
	assert.True(t, projRepo.adjustments[0].delta.Equal(decimal.NewFromInt(-50000)),
		"credit must lower the remaining amount, got %s", projRepo.adjustments[0].delta)

	// Customer denormalized from the project
	assert.Equal(t, uint(7), txn.CustomerID)
	assert.NotEmpty(t, txn.GUID)
	assert.Equal(t, 1, atomic.calls)

	// Exactly one audit entry tagged project_balance_updated
	require.Len(t, actRepo.entries, 1)
	assert.Equal(t, models.ActionProjectBalanceUpdated, actRepo.entries[0].Action)
	assert.Equal(t, models.ActorTypeSystem, actRepo.entries[0].ActorType)
}

func TestRecord_DebitRaisesRemaining(t *testing.T) {
	svc, _, projRepo, actRepo, _ := newLedgerFixture()

	txn := &models.Transaction{
		ProjectID:       1,
		TransactionType: models.TransactionTypeDebit,
		FundSource:      models.FundSourceCash,
		Amount:          decimal.NewFromInt(35000),
		Reason:          "Compra de materiales",
	}

	err := svc.Record(context.Background(), txn)
	require.NoError(t, err)

	require.Len(t, projRepo.adjustments, 1)
	assert.True(t, projRepo.adjustments[0].delta.Equal(decimal.NewFromInt(35000)))
	require.Len(t, actRepo.entries, 1)

	payload := decodeAudit(t, actRepo.entries[0])
	assert.Equal(t, "debit", payload["transaction_type"])
	assert.Equal(t, "35000", payload["delta"])
}

func TestRecord_Validation(t *testing.T) {
	svc, _, projRepo, _, _ := newLedgerFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		txn  *models.Transaction
	}{
		{"missing project", &models.Transaction{TransactionType: "credit", FundSource: "cash", Amount: decimal.NewFromInt(1), Reason: "x"}},
		{"invalid type", &models.Transaction{ProjectID: 1, TransactionType: "transfer", FundSource: "cash", Amount: decimal.NewFromInt(1), Reason: "x"}},
		{"invalid fund source", &models.Transaction{ProjectID: 1, TransactionType: "credit", FundSource: "crypto", Amount: decimal.NewFromInt(1), Reason: "x"}},
		{"negative amount", &models.Transaction{ProjectID: 1, TransactionType: "credit", FundSource: "cash", Amount: decimal.NewFromInt(-5), Reason: "x"}},
		{"missing reason", &models.Transaction{ProjectID: 1, TransactionType: "credit", FundSource: "cash", Amount: decimal.NewFromInt(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Record(ctx, tt.txn)
			assert.Error(t, err)
		})
	}

	// No balance was touched by any rejected transaction
	assert.Empty(t, projRepo.adjustments)
}

func TestAmend_SameProjectSingleCombinedDelta(t *testing.T) {
	svc, txnRepo, projRepo, actRepo, _ := newLedgerFixture()

	old := &models.Transaction{
		ID:              10,
		ProjectID:       1,
		CustomerID:      7,
		TransactionType: models.TransactionTypeDebit,
		FundSource:      models.FundSourceCash,
		Amount:          decimal.NewFromInt(35000),
		Reason:          "Compra de materiales",
		GUID:            "original-guid",
	}
	txnRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Transaction, error) {
		copied := *old
		return &copied, nil
	}

	updated := &models.Transaction{
		ID:              10,
		ProjectID:       1,
		TransactionType: models.TransactionTypeDebit,
		FundSource:      models.FundSourceCash,
		Amount:          decimal.NewFromInt(40000),
		Reason:          "Compra de materiales corregida",
	}

	result, err := svc.Amend(context.Background(), updated)
	require.NoError(t, err)

	// One combined adjustment: -35000 reversal + 40000 new effect
	require.Len(t, projRepo.adjustments, 1)
	assert.True(t, projRepo.adjustments[0].delta.Equal(decimal.NewFromInt(5000)),
		"expected combined delta of 5000, got %s", projRepo.adjustments[0].delta)

	// Identity fields survive the amendment
	assert.Equal(t, "original-guid", result.GUID)
	assert.Equal(t, uint(7), result.CustomerID)

	require.Len(t, actRepo.entries, 1)
	payload := decodeAudit(t, actRepo.entries[0])
	assert.Equal(t, "35000", payload["old_amount"])
	assert.Equal(t, "40000", payload["amount"])
}

func TestAmend_CrossProjectMovesBothBalances(t *testing.T) {
	svc, txnRepo, projRepo, actRepo, _ := newLedgerFixture()

	txnRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Transaction, error) {
		return &models.Transaction{
			ID:              10,
			ProjectID:       1,
			CustomerID:      7,
			TransactionType: models.TransactionTypeCredit,
			FundSource:      models.FundSourceBank,
			Amount:          decimal.NewFromInt(25000),
			Reason:          "Abono",
		}, nil
	}
	projRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Project, error) {
		return &models.Project{ID: id, CustomerID: 9}, nil
	}

	updated := &models.Transaction{
		ID:              10,
		ProjectID:       2,
		TransactionType: models.TransactionTypeCredit,
		FundSource:      models.FundSourceBank,
		Amount:          decimal.NewFromInt(25000),
		Reason:          "Abono",
	}

	_, err := svc.Amend(context.Background(), updated)
	require.NoError(t, err)

	// The old project gets the reversal, the new one the effect
	require.Len(t, projRepo.adjustments, 2)
	assert.Equal(t, uint(1), projRepo.adjustments[0].projectID)
	assert.True(t, projRepo.adjustments[0].delta.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, uint(2), projRepo.adjustments[1].projectID)
	assert.True(t, projRepo.adjustments[1].delta.Equal(decimal.NewFromInt(-25000)))

	// Owner follows the new project
	assert.Equal(t, uint(9), updated.CustomerID)

	require.Len(t, actRepo.entries, 1)
	payload := decodeAudit(t, actRepo.entries[0])
	assert.Equal(t, float64(1), payload["old_project_id"])
	assert.Equal(t, float64(2), payload["project_id"])
}

func TestVoid_ReversesCreateDelta(t *testing.T) {
	svc, txnRepo, projRepo, actRepo, _ := newLedgerFixture()

	deleted := false
	txnRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Transaction, error) {
		return &models.Transaction{
			ID:              10,
			ProjectID:       1,
			TransactionType: models.TransactionTypeCredit,
			FundSource:      models.FundSourceBank,
			Amount:          decimal.NewFromInt(25000),
			Reason:          "Abono",
		}, nil
	}
	txnRepo.mockDelete = func(ctx context.Context, id uint) error {
		deleted = true
		return nil
	}

	err := svc.Void(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Voiding a 25000 credit puts 25000 back
	require.Len(t, projRepo.adjustments, 1)
	assert.True(t, projRepo.adjustments[0].delta.Equal(decimal.NewFromInt(25000)))

	require.Len(t, actRepo.entries, 1)
	payload := decodeAudit(t, actRepo.entries[0])
	assert.Equal(t, true, payload["deleted"])
}

func TestRecordThenVoid_NetsToZero(t *testing.T) {
	svc, txnRepo, projRepo, _, _ := newLedgerFixture()

	txn := &models.Transaction{
		ProjectID:       1,
		TransactionType: models.TransactionTypeDebit,
		FundSource:      models.FundSourceCash,
		Amount:          decimal.RequireFromString("1234.56"),
		Reason:          "Flete",
	}
	require.NoError(t, svc.Record(context.Background(), txn))

	txnRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Transaction, error) {
		copied := *txn
		return &copied, nil
	}
	require.NoError(t, svc.Void(context.Background(), txn.ID))

	net := decimal.Zero
	for _, adj := range projRepo.adjustments {
		net = net.Add(adj.delta)
	}
	assert.True(t, net.IsZero(), "record followed by void must leave the balance unchanged, net %s", net)
}

func TestAdjust_MissingProjectIsConsistencyError(t *testing.T) {
	svc, _, projRepo, actRepo, _ := newLedgerFixture()

	projRepo.mockAdjust = func(ctx context.Context, id uint, delta decimal.Decimal) error {
		return repository.ErrProjectMissing
	}

	txn := &models.Transaction{
		ProjectID:       1,
		TransactionType: models.TransactionTypeCredit,
		FundSource:      models.FundSourceBank,
		Amount:          decimal.NewFromInt(100),
		Reason:          "Abono",
	}

	err := svc.Record(context.Background(), txn)
	assert.ErrorIs(t, err, ErrBalanceConsistency)

	// The aborted unit of work appended nothing
	assert.Empty(t, actRepo.entries)
}

func TestAttachReceipt(t *testing.T) {
	svc, txnRepo, projRepo, _, _ := newLedgerFixture()

	stored := &models.Transaction{ID: 10, ProjectID: 1, Amount: decimal.NewFromInt(100)}
	txnRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Transaction, error) {
		return stored, nil
	}

	txn, err := svc.AttachReceipt(context.Background(), 10, "receipts/2026/08/abc.pdf")
	require.NoError(t, err)
	require.NotNil(t, txn.ReceiptPath)
	assert.Equal(t, "receipts/2026/08/abc.pdf", *txn.ReceiptPath)

	// Receipts never touch balances
	assert.Empty(t, projRepo.adjustments)
}
