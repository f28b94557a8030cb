package services

import (
	"github.com/casaledger/casaledger-api/internal/config"
	"github.com/casaledger/casaledger-api/internal/jobs"
	"github.com/casaledger/casaledger-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	User      *UserService
	Customer  *CustomerService
	Employee  *EmployeeService
	Project   *ProjectService
	Ledger    *LedgerService
	Advance   *AdvanceService
	Activity  *ActivityService
	Analytics *AnalyticsService
	Email     *EmailService
	Export    *ExportService
	Job       *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	activitySvc := NewActivityService(repos.Activity)
	ledgerSvc := NewLedgerService(repos.Transaction, repos.Project, repos)
	emailSvc := NewEmailService(cfg)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.RefreshTok, activitySvc, cfg),
		User:      NewUserService(repos.User),
		Customer:  NewCustomerService(repos.Customer),
		Employee:  NewEmployeeService(repos.Employee),
		Project:   NewProjectService(repos.Project),
		Ledger:    ledgerSvc,
		Advance:   NewAdvanceService(repos.Advance, ledgerSvc, activitySvc, repos),
		Activity:  activitySvc,
		Analytics: NewAnalyticsService(repos.Analytics),
		Email:     emailSvc,
		Export:    NewExportService(),
		Job:       NewJobService(worker),
	}
}
