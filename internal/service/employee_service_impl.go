package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
	"github.com/google/uuid"
)

type employeeService struct {
	employees repository.EmployeeRepo
}

func NewEmployeeService(employees repository.EmployeeRepo) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := nowUTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.employees.Create(ctx, e)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Update(ctx context.Context, e *domain.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = nowUTC()
	return s.employees.Update(ctx, e)
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}
