package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	SellerID   *uuid.UUID
	CustomerID *uuid.UUID
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients. SellerID is
// set for seller and customer users; CustomerID only for customer users.
type AccessTokenClaims struct {
	UserID     uuid.UUID      `json:"user_id"`
	Role       enums.UserRole `json:"role"`
	SellerID   *uuid.UUID     `json:"seller_id,omitempty"`
	CustomerID *uuid.UUID     `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}
