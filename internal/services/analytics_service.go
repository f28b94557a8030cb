package services

import (
	"context"
	"sync"
	"time"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
)

// AnalyticsService derives dashboard figures from raw transaction rows.
// Results are cached briefly; the background worker refreshes the cache so
// the dashboard stays cheap under polling.
type AnalyticsService struct {
	repo repository.AnalyticsRepository

	mu       sync.RWMutex
	cached   *models.DashboardSummary
	cachedAt time.Time
	cacheTTL time.Duration
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		cacheTTL: 5 * time.Minute,
		now:      time.Now,
	}
}

// Dashboard returns the aggregate summary, from cache when fresh
func (s *AnalyticsService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	s.mu.RLock()
	if s.cached != nil && s.now().Sub(s.cachedAt) < s.cacheTTL {
		summary := *s.cached
		s.mu.RUnlock()
		return &summary, nil
	}
	s.mu.RUnlock()

	return s.RefreshCache(ctx)
}

// RefreshCache recomputes the summary and stores it
func (s *AnalyticsService) RefreshCache(ctx context.Context) (*models.DashboardSummary, error) {
	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = summary
	s.cachedAt = s.now()
	s.mu.Unlock()

	result := *summary
	return &result, nil
}

func (s *AnalyticsService) compute(ctx context.Context) (*models.DashboardSummary, error) {
	cash, err := s.repo.FundTotals(ctx, models.FundSourceCash)
	if err != nil {
		return nil, err
	}
	bank, err := s.repo.FundTotals(ctx, models.FundSourceBank)
	if err != nil {
		return nil, err
	}

	monthExpenses, err := s.repo.ExpensesSince(ctx, monthStart(s.now()))
	if err != nil {
		return nil, err
	}

	openAdvances, activeProjects, customers, transactions, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		Cash:            cash,
		Bank:            bank,
		MonthExpenses:   monthExpenses,
		OpenAdvances:    openAdvances,
		ActiveProjects:  activeProjects,
		CustomerCount:   customers,
		TransactionRows: transactions,
	}, nil
}

// monthStart returns the first instant of t's calendar month
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
