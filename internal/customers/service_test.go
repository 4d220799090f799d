package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

type stubCustomerStore struct {
	customers map[uuid.UUID]*models.Customer
	createErr error
}

func newStubCustomerStore() *stubCustomerStore {
	return &stubCustomerStore{customers: make(map[uuid.UUID]*models.Customer)}
}

func (s *stubCustomerStore) CreateCustomer(_ context.Context, customer *models.Customer) error {
	if s.createErr != nil {
		return s.createErr
	}
	copied := *customer
	s.customers[customer.ID] = &copied
	return nil
}

func (s *stubCustomerStore) UpdateCustomer(_ context.Context, customer *models.Customer) error {
	copied := *customer
	s.customers[customer.ID] = &copied
	return nil
}

func (s *stubCustomerStore) FindByID(_ context.Context, sellerID, customerID uuid.UUID) (*models.Customer, error) {
	customer, ok := s.customers[customerID]
	if !ok || customer.SellerID != sellerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *customer
	return &copied, nil
}

func (s *stubCustomerStore) ListBySeller(_ context.Context, sellerID uuid.UUID, activeOnly bool) ([]models.Customer, error) {
	var out []models.Customer
	for _, customer := range s.customers {
		if customer.SellerID != sellerID {
			continue
		}
		if activeOnly && !customer.Active {
			continue
		}
		out = append(out, *customer)
	}
	return out, nil
}

func TestCreateCustomer_NormalizesDocument(t *testing.T) {
	store := newStubCustomerStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.CreateCustomer(context.Background(), uuid.New(), CreateCustomerInput{
		Name:       "Mercado Central",
		Document:   "529.982.247-25",
		PersonType: enums.PersonTypePerson,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if dto.Document != "52998224725" {
		t.Fatalf("expected digits-only document, got %q", dto.Document)
	}
	if !dto.Active {
		t.Fatal("new customers should be active")
	}
}

func TestCreateCustomer_InvalidDocument(t *testing.T) {
	svc, _ := NewService(newStubCustomerStore())

	tests := []struct {
		name  string
		input CreateCustomerInput
	}{
		{name: "bad cpf", input: CreateCustomerInput{Name: "X", Document: "52998224724", PersonType: enums.PersonTypePerson}},
		{name: "bad cnpj", input: CreateCustomerInput{Name: "X", Document: "11222333000182", PersonType: enums.PersonTypeBusiness}},
		{name: "blank name", input: CreateCustomerInput{Name: " ", Document: "52998224725", PersonType: enums.PersonTypePerson}},
		{name: "bad person type", input: CreateCustomerInput{Name: "X", Document: "52998224725", PersonType: "alien"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCustomer(context.Background(), uuid.New(), tt.input)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateCustomer_DuplicateDocument(t *testing.T) {
	store := newStubCustomerStore()
	store.createErr = gorm.ErrDuplicatedKey
	svc, _ := NewService(store)

	_, err := svc.CreateCustomer(context.Background(), uuid.New(), CreateCustomerInput{
		Name: "X", Document: "52998224725", PersonType: enums.PersonTypePerson,
	})
	if err == nil {
		t.Fatal("expected error for duplicate document")
	}
}

func TestUpdateCustomer_ScopedToSeller(t *testing.T) {
	store := newStubCustomerStore()
	svc, _ := NewService(store)
	sellerID := uuid.New()

	created, err := svc.CreateCustomer(context.Background(), sellerID, CreateCustomerInput{
		Name: "Mercado Central", Document: "52998224725", PersonType: enums.PersonTypePerson,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	// Another seller cannot touch this customer.
	name := "Hijacked"
	_, err = svc.UpdateCustomer(context.Background(), uuid.New(), created.ID, UpdateCustomerInput{Name: &name})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign seller, got %v", err)
	}

	updated, err := svc.UpdateCustomer(context.Background(), sellerID, created.ID, UpdateCustomerInput{Name: &name})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.Name != "Hijacked" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.Document != created.Document {
		t.Fatal("document must be immutable")
	}
}

func TestDeactivateCustomer(t *testing.T) {
	store := newStubCustomerStore()
	svc, _ := NewService(store)
	sellerID := uuid.New()

	created, err := svc.CreateCustomer(context.Background(), sellerID, CreateCustomerInput{
		Name: "Mercado Central", Document: "52998224725", PersonType: enums.PersonTypePerson,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	if err := svc.DeactivateCustomer(context.Background(), sellerID, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if store.customers[created.ID].Active {
		t.Fatal("customer should be inactive")
	}

	listed, err := svc.ListCustomers(context.Background(), sellerID, true)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("active-only list should be empty, got %d", len(listed))
	}
}
