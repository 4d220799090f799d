package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/internal/pricing"
	"github.com/orderhub/orderhub-backend/pkg/db"
	"github.com/orderhub/orderhub-backend/pkg/db/models"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

// Service exposes order placement and management.
type Service interface {
	CreateOrder(ctx context.Context, sellerID, customerID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, sellerID, orderID uuid.UUID, customerID *uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, sellerID uuid.UUID, customerID *uuid.UUID) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, sellerID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

// CreateOrderInput holds the validated payload to place an order.
type CreateOrderInput struct {
	Lines []OrderLineInput
	Notes *string
}

// OrderLineInput is one requested line.
type OrderLineInput struct {
	ItemID   uuid.UUID
	Quantity int
}

type orderStore interface {
	CreateOrder(ctx context.Context, tx *gorm.DB, o *models.Order) error
	FindByID(ctx context.Context, sellerID, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, sellerID uuid.UUID, customerID *uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type priceResolver interface {
	ResolvePrices(ctx context.Context, scope pricing.Scope, itemIDs []uuid.UUID) (map[uuid.UUID]pricing.PriceInfo, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     orderStore
	resolver priceResolver
	tx       txRunner
}

// NewService constructs an order service instance.
func NewService(repo orderStore, resolver priceResolver, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("price resolver required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, resolver: resolver, tx: tx}, nil
}

// CreateOrder resolves the customer's effective prices for every requested
// item, snapshots them as line unit prices and persists the order atomically.
// Any item the resolver does not return belongs to another seller, is
// inactive, or does not exist; the whole order is rejected and the offending
// IDs are reported back.
func (s *service) CreateOrder(ctx context.Context, sellerID, customerID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	lines, err := normalizeLines(input.Lines)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.ItemID)
	}

	scope := pricing.Scope{SellerID: sellerID, CustomerID: &customerID}
	prices, err := s.resolver.ResolvePrices(ctx, scope, itemIDs)
	if err != nil {
		return nil, err
	}

	var invalid []uuid.UUID
	for _, id := range itemIDs {
		if _, ok := prices[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "some items are unavailable").
			WithDetails(map[string]any{"invalid_items": invalid})
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		unitPrice := prices[line.ItemID].Price
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ID:        uuid.New(),
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
	}

	o := &models.Order{
		ID:         uuid.New(),
		SellerID:   sellerID,
		CustomerID: customerID,
		Status:     enums.OrderStatusPending,
		Total:      total,
		Notes:      input.Notes,
		Items:      orderItems,
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateOrder(ctx, tx, o)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}
	return NewOrderDTO(o), nil
}

// GetOrder loads an order. When customerID is set, the order must belong to
// that customer.
func (s *service) GetOrder(ctx context.Context, sellerID, orderID uuid.UUID, customerID *uuid.UUID) (*OrderDTO, error) {
	o, err := s.loadOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	if customerID != nil && o.CustomerID != *customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return NewOrderDTO(o), nil
}

// ListOrders returns seller orders, optionally narrowed to one customer.
func (s *service) ListOrders(ctx context.Context, sellerID uuid.UUID, customerID *uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.repo.List(ctx, sellerID, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *NewOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// UpdateStatus moves a pending order to cancelled or delivered. Orders in a
// terminal status are immutable.
func (s *service) UpdateStatus(ctx context.Context, sellerID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	o, err := s.loadOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == status {
		return NewOrderDTO(o), nil
	}
	if o.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("order is already %s", o.Status))
	}
	if status == enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders cannot return to pending")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	o.Status = status
	return NewOrderDTO(o), nil
}

func (s *service) loadOrder(ctx context.Context, sellerID, orderID uuid.UUID) (*models.Order, error) {
	o, err := s.repo.FindByID(ctx, sellerID, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return o, nil
}

// normalizeLines merges duplicate item IDs and validates quantities.
func normalizeLines(lines []OrderLineInput) ([]OrderLineInput, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must have at least one item")
	}

	index := make(map[uuid.UUID]int, len(lines))
	merged := make([]OrderLineInput, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if at, ok := index[line.ItemID]; ok {
			merged[at].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}
