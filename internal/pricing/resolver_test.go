package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

type stubStore struct {
	rows     []PriceRow
	err      error
	calls    int
	lastIDs  []uuid.UUID
	lastScop Scope
}

func (s *stubStore) ListPriceRows(_ context.Context, scope Scope, itemIDs []uuid.UUID) ([]PriceRow, error) {
	s.calls++
	s.lastScop = scope
	s.lastIDs = itemIDs
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func row(id uuid.UUID, code string, final *decimal.Decimal, base decimal.Decimal) PriceRow {
	r := PriceRow{
		ItemID:      id,
		Code:        code,
		Description: "desc " + code,
		BasePrice:   base,
	}
	if final != nil {
		r.FinalPrice = decimal.NewNullDecimal(*final)
	}
	return r
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolvePrices_EmptyInputSkipsStore(t *testing.T) {
	store := &stubStore{}
	resolver, err := NewResolver(store)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	got, err := resolver.ResolvePrices(context.Background(), Scope{SellerID: uuid.New()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
	if store.calls != 0 {
		t.Fatalf("expected no store calls, got %d", store.calls)
	}
}

func TestResolvePrices_DedupesAndSkipsNilIDs(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	store := &stubStore{rows: []PriceRow{
		row(itemA, "A", nil, dec("10.00")),
		row(itemB, "B", nil, dec("20.00")),
	}}
	resolver, _ := NewResolver(store)

	ids := []uuid.UUID{itemA, uuid.Nil, itemB, itemA, itemB}
	got, err := resolver.ResolvePrices(context.Background(), Scope{SellerID: uuid.New()}, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected exactly one store round trip, got %d", store.calls)
	}
	if len(store.lastIDs) != 2 {
		t.Fatalf("expected 2 unique ids sent to store, got %d", len(store.lastIDs))
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 resolved prices, got %d", len(got))
	}
}

func TestResolvePrices_OverrideRules(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name  string
		final *decimal.Decimal
		base  string
		want  string
	}{
		{name: "override wins", final: decPtr("7.50"), base: "10.00", want: "7.5"},
		{name: "zero override falls back", final: decPtr("0"), base: "10.00", want: "10"},
		{name: "missing override falls back", final: nil, base: "10.00", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{rows: []PriceRow{row(itemID, "SKU-1", tt.final, dec(tt.base))}}
			resolver, _ := NewResolver(store)

			customerID := uuid.New()
			got, err := resolver.ResolvePrices(context.Background(), Scope{SellerID: uuid.New(), CustomerID: &customerID}, []uuid.UUID{itemID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			info, ok := got[itemID]
			if !ok {
				t.Fatalf("expected item in result")
			}
			if !info.Price.Equal(dec(tt.want)) {
				t.Fatalf("expected price %s, got %s", tt.want, info.Price)
			}
			if info.Code != "SKU-1" {
				t.Fatalf("unexpected code %q", info.Code)
			}
		})
	}
}

func TestResolvePrices_Idempotent(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	store := &stubStore{rows: []PriceRow{
		row(itemA, "A", decPtr("7.50"), dec("10.00")),
		row(itemB, "B", nil, dec("20.00")),
	}}
	resolver, _ := NewResolver(store)

	customerID := uuid.New()
	scope := Scope{SellerID: uuid.New(), CustomerID: &customerID}
	ids := []uuid.UUID{itemA, itemB}

	first, err := resolver.ResolvePrices(context.Background(), scope, ids)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.ResolvePrices(context.Background(), scope, ids)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for id, want := range first {
		got, ok := second[id]
		if !ok {
			t.Fatalf("item %s missing from second resolution", id)
		}
		if !got.Price.Equal(want.Price) || got.Code != want.Code || got.Description != want.Description {
			t.Fatalf("item %s resolved differently: %+v vs %+v", id, want, got)
		}
	}
	if store.calls != 2 {
		t.Fatalf("expected one store round trip per call, got %d", store.calls)
	}
}

func TestResolvePrices_UnknownItemsOmitted(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()
	store := &stubStore{rows: []PriceRow{row(known, "K", nil, dec("5.00"))}}
	resolver, _ := NewResolver(store)

	got, err := resolver.ResolvePrices(context.Background(), Scope{SellerID: uuid.New()}, []uuid.UUID{known, unknown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only known item, got %d entries", len(got))
	}
	if _, ok := got[unknown]; ok {
		t.Fatal("unknown item should be omitted, not errored")
	}
}

func TestResolvePrices_InvalidScope(t *testing.T) {
	store := &stubStore{}
	resolver, _ := NewResolver(store)

	_, err := resolver.ResolvePrices(context.Background(), Scope{}, []uuid.UUID{uuid.New()})
	if err == nil {
		t.Fatal("expected validation error for missing seller")
	}
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	nilCustomer := uuid.Nil
	_, err = resolver.ResolvePrices(context.Background(), Scope{SellerID: uuid.New(), CustomerID: &nilCustomer}, []uuid.UUID{uuid.New()})
	if err == nil {
		t.Fatal("expected validation error for empty customer id")
	}
	if store.calls != 0 {
		t.Fatalf("store should not be called on invalid scope, got %d calls", store.calls)
	}
}

func TestResolvePrices_StoreErrorWrapped(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	resolver, _ := NewResolver(store)

	_, err := resolver.ResolvePrices(context.Background(), Scope{SellerID: uuid.New()}, []uuid.UUID{uuid.New()})
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestResolvePrices_ScopePassedThrough(t *testing.T) {
	sellerID := uuid.New()
	customerID := uuid.New()
	store := &stubStore{}
	resolver, _ := NewResolver(store)

	_, err := resolver.ResolvePrices(context.Background(), Scope{SellerID: sellerID, CustomerID: &customerID}, []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastScop.SellerID != sellerID {
		t.Fatalf("seller id not passed to store")
	}
	if store.lastScop.CustomerID == nil || *store.lastScop.CustomerID != customerID {
		t.Fatalf("customer id not passed to store")
	}
}

func TestNewResolver_RequiresStore(t *testing.T) {
	if _, err := NewResolver(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}
