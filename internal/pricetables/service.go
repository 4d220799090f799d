package pricetable

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

// Service exposes seller price table management.
type Service interface {
	CreateTable(ctx context.Context, sellerID uuid.UUID, name string) (*PriceTableDTO, error)
	UpdateTable(ctx context.Context, sellerID, tableID uuid.UUID, input UpdateTableInput) (*PriceTableDTO, error)
	GetTable(ctx context.Context, sellerID, tableID uuid.UUID) (*PriceTableDTO, error)
	ListTables(ctx context.Context, sellerID uuid.UUID) ([]PriceTableDTO, error)
	SetItemPrice(ctx context.Context, sellerID, tableID, itemID uuid.UUID, finalPrice decimal.Decimal) error
	RemoveItemPrice(ctx context.Context, sellerID, tableID, itemID uuid.UUID) error
	AssignCustomer(ctx context.Context, sellerID, tableID, customerID uuid.UUID) error
	UnassignCustomer(ctx context.Context, sellerID, customerID uuid.UUID) error
}

// UpdateTableInput holds optional mutation values for a table.
type UpdateTableInput struct {
	Name   *string
	Active *bool
}

type tableStore interface {
	CreateTable(ctx context.Context, table *models.PriceTable) error
	UpdateTable(ctx context.Context, table *models.PriceTable) error
	FindByID(ctx context.Context, sellerID, tableID uuid.UUID) (*models.PriceTable, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.PriceTable, error)
	UpsertItem(ctx context.Context, row *models.PriceTableItem) error
	RemoveItem(ctx context.Context, tableID, itemID uuid.UUID) error
}

type itemLoader interface {
	FindByID(ctx context.Context, sellerID, itemID uuid.UUID) (*models.Item, error)
}

type customerAssigner interface {
	FindByID(ctx context.Context, sellerID, customerID uuid.UUID) (*models.Customer, error)
	UpdatePriceTable(ctx context.Context, customerID uuid.UUID, tableID *uuid.UUID) error
}

type service struct {
	repo      tableStore
	items     itemLoader
	customers customerAssigner
}

// NewService constructs a price table service instance.
func NewService(repo tableStore, items itemLoader, customers customerAssigner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("price table repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer assigner required")
	}
	return &service{repo: repo, items: items, customers: customers}, nil
}

// CreateTable creates an empty active price table.
func (s *service) CreateTable(ctx context.Context, sellerID uuid.UUID, name string) (*PriceTableDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price table name is required")
	}
	table := &models.PriceTable{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     name,
		Active:   true,
	}
	if err := s.repo.CreateTable(ctx, table); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating price table")
	}
	return NewPriceTableDTO(table), nil
}

// UpdateTable renames or (de)activates a table. Deactivating stops all of its
// overrides from applying without losing them.
func (s *service) UpdateTable(ctx context.Context, sellerID, tableID uuid.UUID, input UpdateTableInput) (*PriceTableDTO, error) {
	table, err := s.loadTable(ctx, sellerID, tableID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price table name cannot be empty")
		}
		table.Name = name
	}
	if input.Active != nil {
		table.Active = *input.Active
	}
	if err := s.repo.UpdateTable(ctx, table); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating price table")
	}
	return NewPriceTableDTO(table), nil
}

// GetTable loads a table with all override rows.
func (s *service) GetTable(ctx context.Context, sellerID, tableID uuid.UUID) (*PriceTableDTO, error) {
	table, err := s.loadTable(ctx, sellerID, tableID)
	if err != nil {
		return nil, err
	}
	return NewPriceTableDTO(table), nil
}

// ListTables returns all price tables of the seller.
func (s *service) ListTables(ctx context.Context, sellerID uuid.UUID) ([]PriceTableDTO, error) {
	tables, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing price tables")
	}
	dtos := make([]PriceTableDTO, 0, len(tables))
	for i := range tables {
		dtos = append(dtos, *NewPriceTableDTO(&tables[i]))
	}
	return dtos, nil
}

// SetItemPrice upserts an override row. A zero final price is allowed and
// means "row present but no override": resolution falls back to base price.
func (s *service) SetItemPrice(ctx context.Context, sellerID, tableID, itemID uuid.UUID, finalPrice decimal.Decimal) error {
	if finalPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "final price cannot be negative")
	}
	if _, err := s.loadTable(ctx, sellerID, tableID); err != nil {
		return err
	}
	if _, err := s.items.FindByID(ctx, sellerID, itemID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}

	row := &models.PriceTableItem{
		ID:           uuid.New(),
		PriceTableID: tableID,
		ItemID:       itemID,
		FinalPrice:   finalPrice,
	}
	if err := s.repo.UpsertItem(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving price override")
	}
	return nil
}

// RemoveItemPrice deletes an override row.
func (s *service) RemoveItemPrice(ctx context.Context, sellerID, tableID, itemID uuid.UUID) error {
	if _, err := s.loadTable(ctx, sellerID, tableID); err != nil {
		return err
	}
	if err := s.repo.RemoveItem(ctx, tableID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing price override")
	}
	return nil
}

// AssignCustomer points the customer at the table. Both must belong to the
// same seller.
func (s *service) AssignCustomer(ctx context.Context, sellerID, tableID, customerID uuid.UUID) error {
	if _, err := s.loadTable(ctx, sellerID, tableID); err != nil {
		return err
	}
	if _, err := s.customers.FindByID(ctx, sellerID, customerID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading customer")
	}
	if err := s.customers.UpdatePriceTable(ctx, customerID, &tableID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning price table")
	}
	return nil
}

// UnassignCustomer clears the customer's table; base prices apply afterwards.
func (s *service) UnassignCustomer(ctx context.Context, sellerID, customerID uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, sellerID, customerID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading customer")
	}
	if err := s.customers.UpdatePriceTable(ctx, customerID, nil); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unassigning price table")
	}
	return nil
}

func (s *service) loadTable(ctx context.Context, sellerID, tableID uuid.UUID) (*models.PriceTable, error) {
	table, err := s.repo.FindByID(ctx, sellerID, tableID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading price table")
	}
	return table, nil
}
