package statemachine

import (
	"context"
	"testing"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceFSM_Reconcile(t *testing.T) {
	advance := &models.PettyCashAdvance{
		AdvanceAmount: decimal.NewFromInt(1000),
		ExpenseTotal:  decimal.NewFromInt(200),
		Status:        models.AdvanceStatusOpen,
	}

	err := NewAdvanceFSM(advance).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusPartiallyReturned, advance.Status)

	// Idempotent once partially returned
	err = NewAdvanceFSM(advance).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusPartiallyReturned, advance.Status)
}

func TestAdvanceFSM_ReconcileClosedFails(t *testing.T) {
	advance := &models.PettyCashAdvance{
		AdvanceAmount: decimal.NewFromInt(1000),
		ExpenseTotal:  decimal.NewFromInt(1000),
		Status:        models.AdvanceStatusClosed,
	}

	err := NewAdvanceFSM(advance).Reconcile(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.AdvanceStatusClosed, advance.Status)
}

func TestAdvanceFSM_Close(t *testing.T) {
	tests := []struct {
		name    string
		advance models.PettyCashAdvance
		wantErr bool
	}{
		{
			name: "fully spent",
			advance: models.PettyCashAdvance{
				AdvanceAmount: decimal.NewFromInt(1000),
				ExpenseTotal:  decimal.NewFromInt(1000),
				Status:        models.AdvanceStatusPartiallyReturned,
			},
		},
		{
			name: "spent plus returned",
			advance: models.PettyCashAdvance{
				AdvanceAmount:  decimal.NewFromInt(1000),
				ExpenseTotal:   decimal.NewFromInt(700),
				ReturnedAmount: decimal.NewFromInt(300),
				Status:         models.AdvanceStatusPartiallyReturned,
			},
		},
		{
			name: "outstanding remains",
			advance: models.PettyCashAdvance{
				AdvanceAmount: decimal.NewFromInt(1000),
				ExpenseTotal:  decimal.NewFromInt(999),
				Status:        models.AdvanceStatusPartiallyReturned,
			},
			wantErr: true,
		},
		{
			name: "already closed",
			advance: models.PettyCashAdvance{
				AdvanceAmount: decimal.NewFromInt(1000),
				ExpenseTotal:  decimal.NewFromInt(1000),
				Status:        models.AdvanceStatusClosed,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAdvanceFSM(&tt.advance).Close(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.AdvanceStatusClosed, tt.advance.Status)
		})
	}
}
