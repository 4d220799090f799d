package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/db"
	"github.com/orderhub/orderhub-backend/pkg/db/models"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/types"
)

// Service exposes seller customer management operations.
type Service interface {
	CreateCustomer(ctx context.Context, sellerID uuid.UUID, input CreateCustomerInput) (*CustomerDTO, error)
	UpdateCustomer(ctx context.Context, sellerID, customerID uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error)
	GetCustomer(ctx context.Context, sellerID, customerID uuid.UUID) (*CustomerDTO, error)
	ListCustomers(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]CustomerDTO, error)
	DeactivateCustomer(ctx context.Context, sellerID, customerID uuid.UUID) error
}

// CreateCustomerInput holds the validated payload to create a customer.
type CreateCustomerInput struct {
	Name       string
	Document   string
	PersonType enums.PersonType
	Phone      *string
}

// UpdateCustomerInput holds optional mutation values for a customer.
type UpdateCustomerInput struct {
	Name   *string
	Phone  *string
	Active *bool
}

type customerStore interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, sellerID, customerID uuid.UUID) (*models.Customer, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]models.Customer, error)
}

type service struct {
	repo customerStore
}

// NewService constructs a customer service instance.
func NewService(repo customerStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCustomer registers a customer under the seller. The document is
// validated as CPF or CNPJ depending on person type and stored digits-only.
func (s *service) CreateCustomer(ctx context.Context, sellerID uuid.UUID, input CreateCustomerInput) (*CustomerDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if !input.PersonType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid person type")
	}
	doc, err := types.NewDocument(input.Document, input.PersonType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	customer := &models.Customer{
		ID:         uuid.New(),
		SellerID:   sellerID,
		Name:       name,
		Document:   doc.String(),
		PersonType: input.PersonType,
		Phone:      input.Phone,
		Active:     true,
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer document already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating customer")
	}
	return NewCustomerDTO(customer), nil
}

// UpdateCustomer applies the provided mutations. Documents are immutable after
// registration.
func (s *service) UpdateCustomer(ctx context.Context, sellerID, customerID uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, sellerID, customerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be empty")
		}
		customer.Name = name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}

	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating customer")
	}
	return NewCustomerDTO(customer), nil
}

// GetCustomer loads a single customer scoped to the seller.
func (s *service) GetCustomer(ctx context.Context, sellerID, customerID uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, sellerID, customerID)
	if err != nil {
		return nil, err
	}
	return NewCustomerDTO(customer), nil
}

// ListCustomers returns the seller's customers.
func (s *service) ListCustomers(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]CustomerDTO, error) {
	customers, err := s.repo.ListBySeller(ctx, sellerID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customers")
	}
	dtos := make([]CustomerDTO, 0, len(customers))
	for i := range customers {
		dtos = append(dtos, *NewCustomerDTO(&customers[i]))
	}
	return dtos, nil
}

// DeactivateCustomer blocks further logins and orders for the customer while
// preserving history.
func (s *service) DeactivateCustomer(ctx context.Context, sellerID, customerID uuid.UUID) error {
	customer, err := s.loadCustomer(ctx, sellerID, customerID)
	if err != nil {
		return err
	}
	if !customer.Active {
		return nil
	}
	customer.Active = false
	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivating customer")
	}
	return nil
}

func (s *service) loadCustomer(ctx context.Context, sellerID, customerID uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, sellerID, customerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading customer")
	}
	return customer, nil
}
