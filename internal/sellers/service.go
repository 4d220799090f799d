package seller

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

// Service exposes platform-admin seller management.
type Service interface {
	CreateSeller(ctx context.Context, input CreateSellerInput) (*SellerDTO, error)
	UpdateSeller(ctx context.Context, sellerID uuid.UUID, input UpdateSellerInput) (*SellerDTO, error)
	GetSeller(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error)
	ListSellers(ctx context.Context) ([]SellerDTO, error)
}

// CreateSellerInput holds the validated payload to onboard a seller.
type CreateSellerInput struct {
	Name       string
	Document   string
	PersonType enums.PersonType
	Phone      *string
}

// UpdateSellerInput holds optional mutation values for a seller.
type UpdateSellerInput struct {
	Name   *string
	Phone  *string
	Active *bool
}

type sellerStore interface {
	CreateSeller(ctx context.Context, seller *models.Seller) error
	UpdateSeller(ctx context.Context, seller *models.Seller) error
	FindByID(ctx context.Context, sellerID uuid.UUID) (*models.Seller, error)
	List(ctx context.Context) ([]models.Seller, error)
}

type service struct {
	repo sellerStore
}

// NewService constructs a seller service instance.
func NewService(repo sellerStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller repository required")
	}
	return &service{repo: repo}, nil
}

// CreateSeller onboards a new seller tenant.
func (s *service) CreateSeller(ctx context.Context, input CreateSellerInput) (*SellerDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller name is required")
	}
	if !input.PersonType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid person type")
	}
	doc, err := types.NewDocument(input.Document, input.PersonType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	seller := &models.Seller{
		ID:         uuid.New(),
		Name:       name,
		Document:   doc.String(),
		PersonType: input.PersonType,
		Phone:      input.Phone,
		Active:     true,
	}
	if err := s.repo.CreateSeller(ctx, seller); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "seller document already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating seller")
	}
	return NewSellerDTO(seller), nil
}

// UpdateSeller applies the provided mutations. Documents are immutable.
func (s *service) UpdateSeller(ctx context.Context, sellerID uuid.UUID, input UpdateSellerInput) (*SellerDTO, error) {
	seller, err := s.loadSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller name cannot be empty")
		}
		seller.Name = name
	}
	if input.Phone != nil {
		seller.Phone = input.Phone
	}
	if input.Active != nil {
		seller.Active = *input.Active
	}

	if err := s.repo.UpdateSeller(ctx, seller); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating seller")
	}
	return NewSellerDTO(seller), nil
}

// GetSeller loads a single seller.
func (s *service) GetSeller(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error) {
	seller, err := s.loadSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return NewSellerDTO(seller), nil
}

// ListSellers returns every seller on the platform.
func (s *service) ListSellers(ctx context.Context) ([]SellerDTO, error) {
	sellers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sellers")
	}
	dtos := make([]SellerDTO, 0, len(sellers))
	for i := range sellers {
		dtos = append(dtos, *NewSellerDTO(&sellers[i]))
	}
	return dtos, nil
}

func (s *service) loadSeller(ctx context.Context, sellerID uuid.UUID) (*models.Seller, error) {
	seller, err := s.repo.FindByID(ctx, sellerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading seller")
	}
	return seller, nil
}
