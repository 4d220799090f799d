package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// Seller is a tenant: every item, price table, customer and order hangs off one.
type Seller struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string           `gorm:"column:name;not null"`
	Document   string           `gorm:"column:document;not null;uniqueIndex"`
	PersonType enums.PersonType `gorm:"column:person_type;not null;default:business"`
	Phone      *string          `gorm:"column:phone"`
	Active     bool             `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
