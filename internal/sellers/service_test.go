package seller

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

type stubSellerStore struct {
	sellers   map[uuid.UUID]*models.Seller
	createErr error
}

func newStubSellerStore() *stubSellerStore {
	return &stubSellerStore{sellers: make(map[uuid.UUID]*models.Seller)}
}

func (s *stubSellerStore) CreateSeller(_ context.Context, seller *models.Seller) error {
	if s.createErr != nil {
		return s.createErr
	}
	copied := *seller
	s.sellers[seller.ID] = &copied
	return nil
}

func (s *stubSellerStore) UpdateSeller(_ context.Context, seller *models.Seller) error {
	copied := *seller
	s.sellers[seller.ID] = &copied
	return nil
}

func (s *stubSellerStore) FindByID(_ context.Context, sellerID uuid.UUID) (*models.Seller, error) {
	seller, ok := s.sellers[sellerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *seller
	return &copied, nil
}

func (s *stubSellerStore) List(_ context.Context) ([]models.Seller, error) {
	var out []models.Seller
	for _, seller := range s.sellers {
		out = append(out, *seller)
	}
	return out, nil
}

func TestCreateSeller(t *testing.T) {
	store := newStubSellerStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.CreateSeller(context.Background(), CreateSellerInput{
		Name:       "Distribuidora Alfa",
		Document:   "11.222.333/0001-81",
		PersonType: enums.PersonTypeBusiness,
	})
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}
	if dto.Document != "11222333000181" {
		t.Fatalf("expected digits-only document, got %q", dto.Document)
	}
	if !dto.Active {
		t.Fatal("new sellers should be active")
	}
}

func TestCreateSeller_InvalidDocument(t *testing.T) {
	svc, _ := NewService(newStubSellerStore())

	_, err := svc.CreateSeller(context.Background(), CreateSellerInput{
		Name:       "Distribuidora Alfa",
		Document:   "11222333000182",
		PersonType: enums.PersonTypeBusiness,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSeller_Deactivate(t *testing.T) {
	store := newStubSellerStore()
	svc, _ := NewService(store)

	created, err := svc.CreateSeller(context.Background(), CreateSellerInput{
		Name: "Distribuidora Alfa", Document: "11222333000181", PersonType: enums.PersonTypeBusiness,
	})
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}

	inactive := false
	updated, err := svc.UpdateSeller(context.Background(), created.ID, UpdateSellerInput{Active: &inactive})
	if err != nil {
		t.Fatalf("update seller: %v", err)
	}
	if updated.Active {
		t.Fatal("expected seller deactivated")
	}
	if updated.Document != created.Document {
		t.Fatal("document must be immutable")
	}
}

func TestGetSeller_NotFound(t *testing.T) {
	svc, _ := NewService(newStubSellerStore())

	_, err := svc.GetSeller(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
