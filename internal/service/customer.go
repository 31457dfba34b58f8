package service

import (
	"context"
	"errors"
	"strings"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

var (
	errCustomerName   = errors.New("customer name is required")
	ErrCustomerAbsent = errors.New("customer not found")
)

type CustomerService struct {
	repo repository.CustomerRepo
}

func NewCustomerService(repo repository.CustomerRepo) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, businessID int, p CustomerParams) (int, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, errCustomerName
	}
	return s.repo.Create(ctx, models.Customer{
		BusinessID: businessID,
		Name:       strings.TrimSpace(p.Name),
		Phone:      strings.TrimSpace(p.Phone),
		Email:      strings.TrimSpace(p.Email),
	})
}

func (s *CustomerService) Get(ctx context.Context, businessID, id int) (*models.Customer, error) {
	return s.repo.GetByID(ctx, businessID, id)
}

func (s *CustomerService) List(ctx context.Context, businessID int) ([]models.Customer, error) {
	return s.repo.List(ctx, businessID)
}

func (s *CustomerService) Update(ctx context.Context, businessID, id int, p CustomerParams) error {
	if strings.TrimSpace(p.Name) == "" {
		return errCustomerName
	}
	existing, err := s.repo.GetByID(ctx, businessID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCustomerAbsent
	}
	return s.repo.Update(ctx, models.Customer{
		ID:         id,
		BusinessID: businessID,
		Name:       strings.TrimSpace(p.Name),
		Phone:      strings.TrimSpace(p.Phone),
		Email:      strings.TrimSpace(p.Email),
	})
}

func (s *CustomerService) Delete(ctx context.Context, businessID, id int) error {
	return s.repo.Delete(ctx, businessID, id)
}
