package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// Schema mirrors the goose migrations, minus Postgres-only defaults, so the
// raw pricing queries run against in-memory SQLite.
var testSchema = []string{
	`CREATE TABLE sellers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		document TEXT NOT NULL,
		person_type TEXT NOT NULL DEFAULT 'business',
		phone TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		name TEXT NOT NULL,
		document TEXT NOT NULL,
		person_type TEXT NOT NULL DEFAULT 'business',
		phone TEXT,
		price_table_id TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE items (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		code TEXT NOT NULL,
		description TEXT NOT NULL,
		base_price NUMERIC NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE price_tables (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE price_table_items (
		id TEXT PRIMARY KEY,
		price_table_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		final_price NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
}

func openPricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named in-memory DB so every pooled connection sees the same schema.
	dsn := "file:pricing_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	for _, stmt := range testSchema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

type pricingFixture struct {
	sellerID     uuid.UUID
	customerID   uuid.UUID
	tableID      uuid.UUID
	itemOverride uuid.UUID
	itemZero     uuid.UUID
	itemBaseOnly uuid.UUID
	itemInactive uuid.UUID
	itemForeign  uuid.UUID
}

func seedPricingFixture(t *testing.T, conn *gorm.DB) pricingFixture {
	t.Helper()

	fx := pricingFixture{
		sellerID:     uuid.New(),
		customerID:   uuid.New(),
		tableID:      uuid.New(),
		itemOverride: uuid.New(),
		itemZero:     uuid.New(),
		itemBaseOnly: uuid.New(),
		itemInactive: uuid.New(),
		itemForeign:  uuid.New(),
	}
	otherSellerID := uuid.New()

	sellers := []models.Seller{
		{ID: fx.sellerID, Name: "Distribuidora Alfa", Document: "11222333000181", PersonType: enums.PersonTypeBusiness, Active: true},
		{ID: otherSellerID, Name: "Distribuidora Beta", Document: "22333444000190", PersonType: enums.PersonTypeBusiness, Active: true},
	}
	require.NoError(t, conn.Create(&sellers).Error)

	require.NoError(t, conn.Create(&models.PriceTable{
		ID: fx.tableID, SellerID: fx.sellerID, Name: "Atacado", Active: true,
	}).Error)

	require.NoError(t, conn.Create(&models.Customer{
		ID: fx.customerID, SellerID: fx.sellerID, Name: "Mercado Central",
		Document: "52998224725", PersonType: enums.PersonTypePerson,
		PriceTableID: &fx.tableID, Active: true,
	}).Error)

	items := []models.Item{
		{ID: fx.itemOverride, SellerID: fx.sellerID, Code: "CAFE-500", Description: "Cafe torrado 500g", BasePrice: dec("10.00"), Active: true},
		{ID: fx.itemZero, SellerID: fx.sellerID, Code: "ACUCAR-1K", Description: "Acucar cristal 1kg", BasePrice: dec("6.00"), Active: true},
		{ID: fx.itemBaseOnly, SellerID: fx.sellerID, Code: "ARROZ-5K", Description: "Arroz tipo 1 5kg", BasePrice: dec("22.50"), Active: true},
		{ID: fx.itemInactive, SellerID: fx.sellerID, Code: "FEIJAO-1K", Description: "Feijao carioca 1kg", BasePrice: dec("8.00"), Active: false},
		{ID: fx.itemForeign, SellerID: otherSellerID, Code: "LEITE-1L", Description: "Leite integral 1L", BasePrice: dec("4.50"), Active: true},
	}
	require.NoError(t, conn.Create(&items).Error)

	overrides := []models.PriceTableItem{
		{ID: uuid.New(), PriceTableID: fx.tableID, ItemID: fx.itemOverride, FinalPrice: dec("8.75")},
		{ID: uuid.New(), PriceTableID: fx.tableID, ItemID: fx.itemZero, FinalPrice: decimal.Zero},
	}
	require.NoError(t, conn.Create(&overrides).Error)

	return fx
}

func TestRepository_CustomerScopeResolution(t *testing.T) {
	conn := openPricingTestDB(t)
	fx := seedPricingFixture(t, conn)

	resolver, err := NewResolver(NewRepository(conn))
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	scope := Scope{SellerID: fx.sellerID, CustomerID: &fx.customerID}
	ids := []uuid.UUID{fx.itemOverride, fx.itemZero, fx.itemBaseOnly, fx.itemInactive, fx.itemForeign, uuid.New()}

	got, err := resolver.ResolvePrices(context.Background(), scope, ids)
	if err != nil {
		t.Fatalf("resolve prices: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 resolved items, got %d", len(got))
	}
	assertPrice(t, got, fx.itemOverride, "8.75")
	assertPrice(t, got, fx.itemZero, "6.00")
	assertPrice(t, got, fx.itemBaseOnly, "22.50")
	if _, ok := got[fx.itemInactive]; ok {
		t.Fatal("inactive item should be omitted")
	}
	if _, ok := got[fx.itemForeign]; ok {
		t.Fatal("other seller's item should be omitted")
	}
}

func TestRepository_InactiveTableIgnored(t *testing.T) {
	conn := openPricingTestDB(t)
	fx := seedPricingFixture(t, conn)

	if err := conn.Model(&models.PriceTable{}).Where("id = ?", fx.tableID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate table: %v", err)
	}

	resolver, _ := NewResolver(NewRepository(conn))
	scope := Scope{SellerID: fx.sellerID, CustomerID: &fx.customerID}

	got, err := resolver.ResolvePrices(context.Background(), scope, []uuid.UUID{fx.itemOverride})
	if err != nil {
		t.Fatalf("resolve prices: %v", err)
	}
	assertPrice(t, got, fx.itemOverride, "10.00")
}

func TestRepository_CustomerWithoutTableGetsBasePrices(t *testing.T) {
	conn := openPricingTestDB(t)
	fx := seedPricingFixture(t, conn)

	if err := conn.Model(&models.Customer{}).Where("id = ?", fx.customerID).Update("price_table_id", nil).Error; err != nil {
		t.Fatalf("unassign table: %v", err)
	}

	resolver, _ := NewResolver(NewRepository(conn))
	scope := Scope{SellerID: fx.sellerID, CustomerID: &fx.customerID}

	got, err := resolver.ResolvePrices(context.Background(), scope, []uuid.UUID{fx.itemOverride, fx.itemBaseOnly})
	if err != nil {
		t.Fatalf("resolve prices: %v", err)
	}
	assertPrice(t, got, fx.itemOverride, "10.00")
	assertPrice(t, got, fx.itemBaseOnly, "22.50")
}

func TestRepository_SellerScopeBasePrices(t *testing.T) {
	conn := openPricingTestDB(t)
	fx := seedPricingFixture(t, conn)

	resolver, _ := NewResolver(NewRepository(conn))
	scope := Scope{SellerID: fx.sellerID}

	got, err := resolver.ResolvePrices(context.Background(), scope, []uuid.UUID{fx.itemOverride, fx.itemZero})
	if err != nil {
		t.Fatalf("resolve prices: %v", err)
	}
	// Overrides never apply without a customer in scope.
	assertPrice(t, got, fx.itemOverride, "10.00")
	assertPrice(t, got, fx.itemZero, "6.00")
}

func assertPrice(t *testing.T, got map[uuid.UUID]PriceInfo, itemID uuid.UUID, want string) {
	t.Helper()
	info, ok := got[itemID]
	if !ok {
		t.Fatalf("item %s missing from result", itemID)
	}
	if !info.Price.Equal(dec(want)) {
		t.Fatalf("item %s: expected price %s, got %s", itemID, want, info.Price)
	}
}
