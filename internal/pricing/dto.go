package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceInfo is the resolved price for one item, ready for display or order
// snapshotting.
type PriceInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// PriceRow is one raw row from the pricing store. FinalPrice carries the
// customer's price table override when an assigned active table has a row for
// the item; it is null otherwise.
type PriceRow struct {
	ItemID      uuid.UUID           `gorm:"column:item_id"`
	Code        string              `gorm:"column:code"`
	Description string              `gorm:"column:description"`
	FinalPrice  decimal.NullDecimal `gorm:"column:final_price"`
	BasePrice   decimal.Decimal     `gorm:"column:base_price"`
}
