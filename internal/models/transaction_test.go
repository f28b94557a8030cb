package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceDelta(t *testing.T) {
	credit := Transaction{TransactionType: TransactionTypeCredit, Amount: decimal.RequireFromString("50000.00")}
	debit := Transaction{TransactionType: TransactionTypeDebit, Amount: decimal.RequireFromString("35000.00")}

	assert.True(t, credit.BalanceDelta().Equal(decimal.NewFromInt(-50000)))
	assert.True(t, debit.BalanceDelta().Equal(decimal.NewFromInt(35000)))
}

func TestReversalDelta(t *testing.T) {
	txns := []Transaction{
		{TransactionType: TransactionTypeCredit, Amount: decimal.RequireFromString("1234.56")},
		{TransactionType: TransactionTypeDebit, Amount: decimal.RequireFromString("0.01")},
		{TransactionType: TransactionTypeCredit, Amount: decimal.Zero},
	}

	for _, txn := range txns {
		sum := txn.BalanceDelta().Add(txn.ReversalDelta())
		assert.True(t, sum.IsZero(), "delta plus reversal must cancel out, got %s", sum)
	}
}

func TestIsValidType(t *testing.T) {
	assert.True(t, IsValidType(TransactionTypeCredit))
	assert.True(t, IsValidType(TransactionTypeDebit))
	assert.False(t, IsValidType("transfer"))
	assert.False(t, IsValidType(""))
}

func TestIsValidFundSource(t *testing.T) {
	assert.True(t, IsValidFundSource(FundSourceCash))
	assert.True(t, IsValidFundSource(FundSourceBank))
	assert.False(t, IsValidFundSource("crypto"))
	assert.False(t, IsValidFundSource(""))
}

func TestTransactionToResponse_HasReceipt(t *testing.T) {
	path := "receipts/2026/08/abc.pdf"
	withReceipt := Transaction{ReceiptPath: &path}
	withoutReceipt := Transaction{}
	empty := ""
	emptyReceipt := Transaction{ReceiptPath: &empty}

	assert.True(t, withReceipt.ToResponse().HasReceipt)
	assert.False(t, withoutReceipt.ToResponse().HasReceipt)
	assert.False(t, emptyReceipt.ToResponse().HasReceipt)
}
