package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/api/responses"
	"github.com/lotmotors/resale-backend/api/validators"
	"github.com/lotmotors/resale-backend/internal/partners"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/logger"
	"github.com/lotmotors/resale-backend/pkg/pagination"
)

type partnerCreateRequest struct {
	Name           string          `json:"name" validate:"required,min=1"`
	City           string          `json:"city"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func (r partnerCreateRequest) toInput(userID uuid.UUID, role string) partners.CreatePartnerInput {
	return partners.CreatePartnerInput{
		Name:           r.Name,
		City:           r.City,
		CommissionRate: r.CommissionRate,
		ActorUserID:    userID,
		ActorRole:      role,
	}
}

// PartnerCreate registers a distribution partner.
func PartnerCreate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		var payload partnerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := actorFromContext(r.Context())
		dto, err := svc.Create(r.Context(), payload.toInput(actor.UserID, actor.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type partnerListResponse struct {
	Items []partners.PartnerDTO `json:"items"`
	Meta  pagination.Meta       `json:"meta"`
}

// PartnerList returns partners ordered by name.
func PartnerList(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, meta, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, partnerListResponse{Items: items, Meta: meta})
	}
}

// PartnerDetail returns one partner.
func PartnerDetail(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := pathUUID(r, "partnerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type partnerUpdateRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	City           *string          `json:"city,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}

func (r partnerUpdateRequest) toInput() partners.UpdatePartnerInput {
	return partners.UpdatePartnerInput{
		Name:           r.Name,
		City:           r.City,
		CommissionRate: r.CommissionRate,
	}
}

// PartnerUpdate adjusts partner fields.
func PartnerUpdate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := pathUUID(r, "partnerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload partnerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// PartnerDelete removes a partner with no assigned vehicles.
func PartnerDelete(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := pathUUID(r, "partnerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
