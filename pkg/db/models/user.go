package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// User is a login identity. Seller users carry SellerID; customer users carry
// both SellerID and CustomerID; admins carry neither.
type User struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email               string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash        string         `gorm:"column:password_hash;not null"`
	Role                enums.UserRole `gorm:"column:role;not null"`
	SellerID            *uuid.UUID     `gorm:"column:seller_id;type:uuid"`
	CustomerID          *uuid.UUID     `gorm:"column:customer_id;type:uuid"`
	ResetToken          *string        `gorm:"column:reset_token"`
	ResetTokenExpiresAt *time.Time     `gorm:"column:reset_token_expires_at"`
	Active              bool           `gorm:"column:active;not null;default:true"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
