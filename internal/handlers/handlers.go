package handlers

import (
	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/casaledger/casaledger-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	User        *UserHandler
	Customer    *CustomerHandler
	Employee    *EmployeeHandler
	Project     *ProjectHandler
	Transaction *TransactionHandler
	Advance     *AdvanceHandler
	Activity    *ActivityHandler
	Analytics   *AnalyticsHandler
	Report      *ReportHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, storage *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		User:        NewUserHandler(svcs.User),
		Customer:    NewCustomerHandler(svcs.Customer),
		Employee:    NewEmployeeHandler(svcs.Employee),
		Project:     NewProjectHandler(svcs.Project),
		Transaction: NewTransactionHandler(svcs.Ledger, storage),
		Advance:     NewAdvanceHandler(svcs.Advance),
		Activity:    NewActivityHandler(svcs.Activity),
		Analytics:   NewAnalyticsHandler(svcs.Analytics),
		Report:      NewReportHandler(svcs.Ledger, svcs.Project, svcs.Export),
		Job:         NewJobHandler(svcs.Job),
	}
}
