package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"billscan/internal/domain"
	"billscan/internal/port"
)

// CreateBusinessInput is the DTO for registering a payee business.
type CreateBusinessInput struct {
	Name        string
	BankAccount string
	PDFProducer string
	Type        domain.BusinessType
	URL         string
	Address     *CreateAddressInput
}

// CreateAddressInput is the DTO for a business address.
type CreateAddressInput struct {
	Street     string
	Number     string
	City       string
	PostalCode int
}

// BusinessService defines the payee business management contract.
type BusinessService interface {
	Create(ctx context.Context, input CreateBusinessInput) (*domain.Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	List(ctx context.Context, offset, limit int) ([]domain.Business, int, error)
}

type businessService struct {
	businessRepo port.BusinessRepository
	addressRepo  port.AddressRepository
}

// NewBusinessService creates a BusinessService implementation.
func NewBusinessService(businessRepo port.BusinessRepository, addressRepo port.AddressRepository) BusinessService {
	return &businessService{businessRepo: businessRepo, addressRepo: addressRepo}
}

func (s *businessService) Create(ctx context.Context, input CreateBusinessInput) (*domain.Business, error) {
	now := time.Now().UTC()

	business := &domain.Business{
		ID:          uuid.New(),
		Name:        input.Name,
		BankAccount: input.BankAccount,
		PDFProducer: input.PDFProducer,
		Type:        input.Type,
		URL:         input.URL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := business.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBusiness, err)
	}

	if input.Address != nil {
		address := &domain.Address{
			ID:         uuid.New(),
			Street:     input.Address.Street,
			Number:     input.Address.Number,
			City:       input.Address.City,
			PostalCode: input.Address.PostalCode,
			CreatedAt:  now,
		}
		if err := address.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBusiness, err)
		}
		if err := s.addressRepo.Create(ctx, address); err != nil {
			return nil, err
		}
		business.AddressID = &address.ID
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *businessService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return s.businessRepo.GetByID(ctx, id)
}

func (s *businessService) List(ctx context.Context, offset, limit int) ([]domain.Business, int, error) {
	return s.businessRepo.List(ctx, offset, limit)
}
