package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// CustomerDTO represents the customer payload returned to clients.
type CustomerDTO struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Document     string     `json:"document"`
	PersonType   string     `json:"person_type"`
	Phone        *string    `json:"phone,omitempty"`
	PriceTableID *uuid.UUID `json:"price_table_id,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewCustomerDTO builds a DTO from the persisted model.
func NewCustomerDTO(customer *models.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:           customer.ID,
		Name:         customer.Name,
		Document:     customer.Document,
		PersonType:   customer.PersonType.String(),
		Phone:        customer.Phone,
		PriceTableID: customer.PriceTableID,
		Active:       customer.Active,
		CreatedAt:    customer.CreatedAt,
		UpdatedAt:    customer.UpdatedAt,
	}
}
