package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

type stubItemStore struct {
	items     map[uuid.UUID]*models.Item
	createErr error
	updateErr error
}

func newStubItemStore() *stubItemStore {
	return &stubItemStore{items: make(map[uuid.UUID]*models.Item)}
}

func (s *stubItemStore) CreateItem(_ context.Context, item *models.Item) error {
	if s.createErr != nil {
		return s.createErr
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItemStore) UpdateItem(_ context.Context, item *models.Item) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItemStore) FindByID(_ context.Context, sellerID, itemID uuid.UUID) (*models.Item, error) {
	item, ok := s.items[itemID]
	if !ok || item.SellerID != sellerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubItemStore) ListBySeller(_ context.Context, sellerID uuid.UUID, activeOnly bool) ([]models.Item, error) {
	var out []models.Item
	for _, item := range s.items {
		if item.SellerID != sellerID {
			continue
		}
		if activeOnly && !item.Active {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestCreateItem(t *testing.T) {
	store := newStubItemStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	sellerID := uuid.New()

	dto, err := svc.CreateItem(context.Background(), sellerID, CreateItemInput{
		Code:        "  CAFE-500  ",
		Description: "Cafe torrado 500g",
		BasePrice:   mustDec(t, "10.00"),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if dto.Code != "CAFE-500" {
		t.Fatalf("expected trimmed code, got %q", dto.Code)
	}
	if !dto.Active {
		t.Fatal("new items should be active")
	}
	if len(store.items) != 1 {
		t.Fatalf("expected item persisted, got %d", len(store.items))
	}
}

func TestCreateItem_Validation(t *testing.T) {
	svc, _ := NewService(newStubItemStore())
	sellerID := uuid.New()

	tests := []struct {
		name  string
		input CreateItemInput
	}{
		{name: "missing code", input: CreateItemInput{Description: "x", BasePrice: decimal.Zero}},
		{name: "missing description", input: CreateItemInput{Code: "A", BasePrice: decimal.Zero}},
		{name: "negative price", input: CreateItemInput{Code: "A", Description: "x", BasePrice: mustDec(t, "-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), sellerID, tt.input)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateItem_DuplicateCode(t *testing.T) {
	store := newStubItemStore()
	store.createErr = errors.New(`duplicate key value violates unique constraint "items_seller_code_key"`)
	svc, _ := NewService(store)

	_, err := svc.CreateItem(context.Background(), uuid.New(), CreateItemInput{
		Code: "CAFE-500", Description: "Cafe", BasePrice: decimal.Zero,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	svc, _ := NewService(newStubItemStore())

	_, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), UpdateItemInput{})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateItem_AppliesPartialChanges(t *testing.T) {
	store := newStubItemStore()
	svc, _ := NewService(store)
	sellerID := uuid.New()

	created, err := svc.CreateItem(context.Background(), sellerID, CreateItemInput{
		Code: "CAFE-500", Description: "Cafe", BasePrice: mustDec(t, "10.00"),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	newPrice := mustDec(t, "12.50")
	updated, err := svc.UpdateItem(context.Background(), sellerID, created.ID, UpdateItemInput{BasePrice: &newPrice})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if !updated.BasePrice.Equal(newPrice) {
		t.Fatalf("expected updated price, got %s", updated.BasePrice)
	}
	if updated.Code != "CAFE-500" {
		t.Fatalf("code should be unchanged, got %q", updated.Code)
	}
}

func TestDeactivateItem_Idempotent(t *testing.T) {
	store := newStubItemStore()
	svc, _ := NewService(store)
	sellerID := uuid.New()

	created, err := svc.CreateItem(context.Background(), sellerID, CreateItemInput{
		Code: "CAFE-500", Description: "Cafe", BasePrice: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := svc.DeactivateItem(context.Background(), sellerID, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if store.items[created.ID].Active {
		t.Fatal("item should be inactive")
	}

	// Second call is a no-op, not an error.
	store.updateErr = errors.New("should not be called")
	if err := svc.DeactivateItem(context.Background(), sellerID, created.ID); err != nil {
		t.Fatalf("second deactivate: %v", err)
	}
}

func TestListItems_ActiveOnly(t *testing.T) {
	store := newStubItemStore()
	svc, _ := NewService(store)
	sellerID := uuid.New()

	active, _ := svc.CreateItem(context.Background(), sellerID, CreateItemInput{Code: "A", Description: "a", BasePrice: decimal.Zero})
	inactive, _ := svc.CreateItem(context.Background(), sellerID, CreateItemInput{Code: "B", Description: "b", BasePrice: decimal.Zero})
	if err := svc.DeactivateItem(context.Background(), sellerID, inactive.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	items, err := svc.ListItems(context.Background(), sellerID, true)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].ID != active.ID {
		t.Fatalf("expected only the active item, got %d entries", len(items))
	}
}
