package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// Customer is a buyer account scoped to a single seller. PriceTableID is the
// optional pricing override assignment; nil means base prices apply.
type Customer struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID     uuid.UUID        `gorm:"column:seller_id;type:uuid;not null"`
	Name         string           `gorm:"column:name;not null"`
	Document     string           `gorm:"column:document;not null"`
	PersonType   enums.PersonType `gorm:"column:person_type;not null;default:business"`
	Phone        *string          `gorm:"column:phone"`
	PriceTableID *uuid.UUID       `gorm:"column:price_table_id;type:uuid"`
	Active       bool             `gorm:"column:active;not null;default:true"`
	Seller       *Seller          `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
