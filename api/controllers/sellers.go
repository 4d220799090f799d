package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	sellersvc "github.com/orderhub/orderhub-backend/internal/sellers"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type createSellerRequest struct {
	Name       string  `json:"name" validate:"required"`
	Document   string  `json:"document" validate:"required"`
	PersonType string  `json:"person_type" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
}

type updateSellerRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// CreateSeller onboards a tenant. Admin only.
func CreateSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSellerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		personType, err := enums.ParsePersonType(strings.TrimSpace(payload.PersonType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid person type"))
			return
		}

		seller, err := svc.CreateSeller(r.Context(), sellersvc.CreateSellerInput{
			Name:       payload.Name,
			Document:   payload.Document,
			PersonType: personType,
			Phone:      payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, seller)
	}
}

// UpdateSeller applies a partial update to a tenant. Admin only.
func UpdateSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := validators.ParsePathUUID(chi.URLParam(r, "sellerId"), "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSellerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.UpdateSeller(r.Context(), sellerID, sellersvc.UpdateSellerInput{
			Name:   payload.Name,
			Phone:  payload.Phone,
			Active: payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}

// GetSeller fetches one tenant. Admin only.
func GetSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := validators.ParsePathUUID(chi.URLParam(r, "sellerId"), "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.GetSeller(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}

// ListSellers lists all tenants. Admin only.
func ListSellers(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellers, err := svc.ListSellers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sellers)
	}
}
