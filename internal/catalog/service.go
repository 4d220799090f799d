package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/pkg/db"
	"github.com/orderhub/orderhub-backend/pkg/db/models"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

// Service exposes seller catalog management operations.
type Service interface {
	CreateItem(ctx context.Context, sellerID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, sellerID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, sellerID, itemID uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]ItemDTO, error)
	DeactivateItem(ctx context.Context, sellerID, itemID uuid.UUID) error
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	Code        string
	Description string
	BasePrice   decimal.Decimal
}

// UpdateItemInput holds optional mutation values for an item.
type UpdateItemInput struct {
	Code        *string
	Description *string
	BasePrice   *decimal.Decimal
	Active      *bool
}

type itemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, sellerID, itemID uuid.UUID) (*models.Item, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]models.Item, error)
}

type service struct {
	repo itemStore
}

// NewService constructs a catalog service instance.
func NewService(repo itemStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateItem creates a catalog item for the seller.
func (s *service) CreateItem(ctx context.Context, sellerID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item code is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item description is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	item := &models.Item{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Code:        code,
		Description: strings.TrimSpace(input.Description),
		BasePrice:   input.BasePrice,
		Active:      true,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating item")
	}
	return NewItemDTO(item), nil
}

// UpdateItem applies the provided mutations to an existing item.
func (s *service) UpdateItem(ctx context.Context, sellerID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, sellerID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}

	if input.Code != nil {
		code := strings.TrimSpace(*input.Code)
		if code == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item code cannot be empty")
		}
		item.Code = code
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item description cannot be empty")
		}
		item.Description = desc
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
		}
		item.BasePrice = *input.BasePrice
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating item")
	}
	return NewItemDTO(item), nil
}

// GetItem loads a single item scoped to the seller.
func (s *service) GetItem(ctx context.Context, sellerID, itemID uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, sellerID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}
	return NewItemDTO(item), nil
}

// ListItems returns the seller catalog.
func (s *service) ListItems(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]ItemDTO, error) {
	items, err := s.repo.ListBySeller(ctx, sellerID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing items")
	}
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *NewItemDTO(&items[i]))
	}
	return dtos, nil
}

// DeactivateItem removes the item from active catalogs without deleting it,
// so historical orders keep their references.
func (s *service) DeactivateItem(ctx context.Context, sellerID, itemID uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, sellerID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}
	if !item.Active {
		return nil
	}
	item.Active = false
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivating item")
	}
	return nil
}
