package services

import (
	"context"
	"testing"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock AnalyticsRepository counting computations
type mockAnalyticsRepository struct {
	computeCalls int
	cashCredits  decimal.Decimal
	cashDebits   decimal.Decimal
	expensesFrom time.Time
}

func (m *mockAnalyticsRepository) FundTotals(ctx context.Context, fundSource string) (models.FundTotals, error) {
	if fundSource == models.FundSourceCash {
		m.computeCalls++
		return models.FundTotals{Credits: m.cashCredits, Debits: m.cashDebits}, nil
	}
	return models.FundTotals{}, nil
}

func (m *mockAnalyticsRepository) ExpensesSince(ctx context.Context, from time.Time) (decimal.Decimal, error) {
	m.expensesFrom = from
	return decimal.Zero, nil
}

func (m *mockAnalyticsRepository) Counts(ctx context.Context) (int64, int64, int64, int64, error) {
	return 2, 3, 4, 5, nil
}

func TestDashboard_CachesWithinTTL(t *testing.T) {
	repo := &mockAnalyticsRepository{cashCredits: decimal.NewFromInt(9000), cashDebits: decimal.NewFromInt(4000)}
	svc := NewAnalyticsService(repo)

	current := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	first, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.computeCalls)
	assert.True(t, first.Cash.Net().Equal(decimal.NewFromInt(5000)))

	// Within the TTL the cached copy is served
	current = current.Add(2 * time.Minute)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.computeCalls)

	// Past the TTL the summary is recomputed
	current = current.Add(10 * time.Minute)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.computeCalls)
}

func TestRefreshCache_BypassesTTL(t *testing.T) {
	repo := &mockAnalyticsRepository{}
	svc := NewAnalyticsService(repo)

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.RefreshCache(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.computeCalls)
}

func TestDashboard_MonthExpensesCutoff(t *testing.T) {
	repo := &mockAnalyticsRepository{}
	svc := NewAnalyticsService(repo)

	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	}

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	// Expenses are summed from the first instant of the current month
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), repo.expensesFrom)

	// A new month moves the cutoff
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)
	}
	_, err = svc.RefreshCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.expensesFrom)
}

func TestDashboardResponse_ClampsAtDisplayOnly(t *testing.T) {
	// More spent than received: raw net goes negative
	summary := models.DashboardSummary{
		Cash: models.FundTotals{Credits: decimal.NewFromInt(1000), Debits: decimal.NewFromInt(2500)},
		Bank: models.FundTotals{Credits: decimal.NewFromInt(3000), Debits: decimal.NewFromInt(1000)},
	}

	assert.True(t, summary.Cash.Net().Equal(decimal.NewFromInt(-1500)), "raw net must stay signed")

	resp := summary.ToResponse()
	assert.True(t, resp.CashOnHand.IsZero(), "display value is clamped to zero")
	assert.True(t, resp.BankBalance.Equal(decimal.NewFromInt(2000)))
}
