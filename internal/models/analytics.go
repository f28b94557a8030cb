package models

import (
	"github.com/shopspring/decimal"
)

// FundTotals holds the signed accumulation of credits minus debits for one
// fund source. The raw value may go negative; clamping happens only in the
// response, never in storage.
type FundTotals struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
}

// Net returns credits minus debits, unclamped
func (f FundTotals) Net() decimal.Decimal {
	return f.Credits.Sub(f.Debits)
}

// DashboardSummary aggregates raw transaction rows into the figures shown on
// the dashboard. Recomputed on demand; never persisted.
type DashboardSummary struct {
	Cash            FundTotals      `json:"cash"`
	Bank            FundTotals      `json:"bank"`
	MonthExpenses   decimal.Decimal `json:"month_expenses"`
	OpenAdvances    int64           `json:"open_advances"`
	ActiveProjects  int64           `json:"active_projects"`
	CustomerCount   int64           `json:"customer_count"`
	TransactionRows int64           `json:"transaction_rows"`
}

// DashboardResponse is the display form of DashboardSummary. Cash and bank
// balances are clamped to zero here, at display time only.
type DashboardResponse struct {
	CashOnHand     decimal.Decimal `json:"cash_on_hand"`
	BankBalance    decimal.Decimal `json:"bank_balance"`
	MonthExpenses  decimal.Decimal `json:"month_expenses"`
	OpenAdvances   int64           `json:"open_advances"`
	ActiveProjects int64           `json:"active_projects"`
	CustomerCount  int64           `json:"customer_count"`
}

// ToResponse converts DashboardSummary to its display form
func (d *DashboardSummary) ToResponse() DashboardResponse {
	return DashboardResponse{
		CashOnHand:     clampZero(d.Cash.Net()),
		BankBalance:    clampZero(d.Bank.Net()),
		MonthExpenses:  d.MonthExpenses,
		OpenAdvances:   d.OpenAdvances,
		ActiveProjects: d.ActiveProjects,
		CustomerCount:  d.CustomerCount,
	}
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
