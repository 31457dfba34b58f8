package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

var (
	errBusinessName    = errors.New("business name is required")
	errBadSubdomain    = errors.New("subdomain must be 2-40 lowercase letters, digits or hyphens")
	ErrUnknownBusiness = errors.New("unknown business")
)

var subdomainRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,39}$`)

type BusinessService struct {
	repo repository.BusinessRepo
}

func NewBusinessService(repo repository.BusinessRepo) *BusinessService {
	return &BusinessService{repo: repo}
}

func (s *BusinessService) Create(ctx context.Context, p BusinessParams) (int, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, errBusinessName
	}
	sub := strings.ToLower(strings.TrimSpace(p.Subdomain))
	if !subdomainRe.MatchString(sub) {
		return 0, errBadSubdomain
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = "USD"
	}
	return s.repo.Create(ctx, models.Business{
		Name:      strings.TrimSpace(p.Name),
		Subdomain: sub,
		Currency:  currency,
		TaxRate:   p.TaxRate,
		LogoURL:   p.LogoURL,
	})
}

func (s *BusinessService) Get(ctx context.Context, id int) (*models.Business, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveSubdomain maps a request subdomain to its business, or
// ErrUnknownBusiness if no tenant owns it.
func (s *BusinessService) ResolveSubdomain(ctx context.Context, subdomain string) (*models.Business, error) {
	b, err := s.repo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrUnknownBusiness
	}
	return b, nil
}

func (s *BusinessService) Update(ctx context.Context, b models.Business) error {
	if strings.TrimSpace(b.Name) == "" {
		return errBusinessName
	}
	return s.repo.Update(ctx, b)
}
