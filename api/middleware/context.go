package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID     contextKey = "user_id"
	ctxRole       contextKey = "actor_role"
	ctxSellerID   contextKey = "seller_id"
	ctxCustomerID contextKey = "customer_id"
)

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return uuidFromContext(ctx, ctxUserID)
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// SellerIDFromContext returns the tenant scope of the authenticated actor.
// Customer tokens also carry their owning seller's id.
func SellerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return uuidFromContext(ctx, ctxSellerID)
}

func CustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return uuidFromContext(ctx, ctxCustomerID)
}

func uuidFromContext(ctx context.Context, key contextKey) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	if v, ok := ctx.Value(key).(uuid.UUID); ok && v != uuid.Nil {
		return v, true
	}
	return uuid.Nil, false
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithSellerID injects the seller scope into the context.
func WithSellerID(ctx context.Context, sellerID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSellerID, sellerID)
}

// WithCustomerID injects the customer scope into the context.
func WithCustomerID(ctx context.Context, customerID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCustomerID, customerID)
}
