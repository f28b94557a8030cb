package services

import (
	"context"
	"errors"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
)

// CustomerService manages customer records
type CustomerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.FindByIDWithProjects(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, query *repository.ListQuery) ([]models.Customer, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	if customer.Name == "" {
		return errors.New("el nombre del cliente es requerido")
	}
	return s.repo.Create(ctx, customer)
}

func (s *CustomerService) Update(ctx context.Context, customer *models.Customer) error {
	existing, err := s.repo.FindByID(ctx, customer.ID)
	if err != nil {
		return ErrNotFound
	}

	if customer.Name == "" {
		customer.Name = existing.Name
	}
	if customer.Address == nil {
		customer.Address = existing.Address
	}
	if customer.Phone == nil {
		customer.Phone = existing.Phone
	}
	if customer.Email == nil {
		customer.Email = existing.Email
	}
	if customer.Notes == nil {
		customer.Notes = existing.Notes
	}
	customer.CreatedAt = existing.CreatedAt

	return s.repo.Update(ctx, customer)
}

// Delete removes a customer; the store cascades to its projects and
// transactions.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// EmployeeService manages employee records
type EmployeeService struct {
	repo repository.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

func (s *EmployeeService) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *EmployeeService) Create(ctx context.Context, employee *models.Employee) error {
	if employee.FullName == "" {
		return errors.New("el nombre del empleado es requerido")
	}
	return s.repo.Create(ctx, employee)
}

func (s *EmployeeService) Update(ctx context.Context, employee *models.Employee) error {
	existing, err := s.repo.FindByID(ctx, employee.ID)
	if err != nil {
		return ErrNotFound
	}

	if employee.FullName == "" {
		employee.FullName = existing.FullName
	}
	if employee.Department == nil {
		employee.Department = existing.Department
	}
	if employee.Email == nil {
		employee.Email = existing.Email
	}
	if employee.Phone == nil {
		employee.Phone = existing.Phone
	}
	employee.CreatedAt = existing.CreatedAt

	return s.repo.Update(ctx, employee)
}

// Delete removes an employee; advances cascade, transaction links are nulled.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
