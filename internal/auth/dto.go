package auth

import (
	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// UserDTO represents the authenticated user payload returned to clients.
type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	SellerID   *uuid.UUID `json:"seller_id,omitempty"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// LoginResult bundles the minted token with the user payload.
type LoginResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// NewUserDTO builds a DTO from the persisted model.
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role.String(),
		SellerID:   user.SellerID,
		CustomerID: user.CustomerID,
	}
}
