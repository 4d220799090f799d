package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceTableItem is one override row. A zero FinalPrice means "no override
// set": resolution falls through to the item base price.
type PriceTableItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PriceTableID uuid.UUID       `gorm:"column:price_table_id;type:uuid;not null;uniqueIndex:idx_price_table_items_table_item"`
	ItemID       uuid.UUID       `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_price_table_items_table_item"`
	FinalPrice   decimal.Decimal `gorm:"column:final_price;type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
