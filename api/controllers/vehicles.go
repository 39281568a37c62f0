package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lotmotors/resale-backend/api/responses"
	"github.com/lotmotors/resale-backend/api/validators"
	"github.com/lotmotors/resale-backend/internal/vehicles"
	"github.com/lotmotors/resale-backend/pkg/enums"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/logger"
	"github.com/lotmotors/resale-backend/pkg/pagination"
	"github.com/lotmotors/resale-backend/pkg/types"
)

type vehicleCreateRequest struct {
	LicensePlate       string          `json:"license_plate" validate:"required"`
	Renavam            *string         `json:"renavam,omitempty"`
	VIN                *string         `json:"vin,omitempty"`
	Year               int             `json:"year" validate:"required,min=1950"`
	Color              string          `json:"color" validate:"required"`
	BrandName          string          `json:"brand_name" validate:"required"`
	ModelName          string          `json:"model_name" validate:"required"`
	SupplierSource     string          `json:"supplier_source" validate:"required"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	FreightCost        decimal.Decimal `json:"freight_cost"`
	PurchaseCommission decimal.Decimal `json:"purchase_commission"`
}

func (r vehicleCreateRequest) toInput(actor vehicles.Actor) (vehicles.CreateVehicleInput, error) {
	source, err := enums.ParseSupplierSource(strings.TrimSpace(r.SupplierSource))
	if err != nil {
		return vehicles.CreateVehicleInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid supplier_source")
	}
	return vehicles.CreateVehicleInput{
		LicensePlate:       r.LicensePlate,
		Renavam:            r.Renavam,
		VIN:                r.VIN,
		Year:               r.Year,
		Color:              r.Color,
		BrandName:          r.BrandName,
		ModelName:          r.ModelName,
		SupplierSource:     source,
		PurchasePrice:      r.PurchasePrice,
		FreightCost:        r.FreightCost,
		PurchaseCommission: r.PurchaseCommission,
		Actor:              actor,
	}, nil
}

// VehicleCreate registers a vehicle entering the yard.
func VehicleCreate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		var payload vehicleCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(actorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type vehicleListResponse struct {
	Items []vehicles.VehicleDTO `json:"items"`
	Meta  pagination.Meta       `json:"meta"`
}

// VehicleList returns a paginated, filterable vehicle listing.
func VehicleList(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := vehicles.ListFilters{
			Search: validators.SanitizeString(r.URL.Query().Get("q"), 120),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseVehicleStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		partnerID, err := queryUUID(r, "partner_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.PartnerID = partnerID

		items, meta, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicleListResponse{Items: items, Meta: meta})
	}
}

// VehicleDetail returns the full vehicle view with cost aggregates.
func VehicleDetail(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		id, err := pathUUID(r, "vehicleID")
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

type vehicleUpdateRequest struct {
	Renavam            *string          `json:"renavam,omitempty"`
	VIN                *string          `json:"vin,omitempty"`
	Year               *int             `json:"year,omitempty" validate:"omitempty,min=1950"`
	Color              *string          `json:"color,omitempty"`
	BrandName          *string          `json:"brand_name,omitempty"`
	ModelName          *string          `json:"model_name,omitempty"`
	FreightCost        *decimal.Decimal `json:"freight_cost,omitempty"`
	PurchaseCommission *decimal.Decimal `json:"purchase_commission,omitempty"`

	PurchaseInvoiceDocumentID        types.NullableUUID `json:"purchase_invoice_document_id,omitempty"`
	PurchasePaymentReceiptDocumentID types.NullableUUID `json:"purchase_payment_receipt_document_id,omitempty"`
}

func (r vehicleUpdateRequest) toInput() vehicles.UpdateVehicleInput {
	return vehicles.UpdateVehicleInput{
		Renavam:            r.Renavam,
		VIN:                r.VIN,
		Year:               r.Year,
		Color:              r.Color,
		BrandName:          r.BrandName,
		ModelName:          r.ModelName,
		FreightCost:        r.FreightCost,
		PurchaseCommission: r.PurchaseCommission,

		PurchaseInvoiceDocumentID:        r.PurchaseInvoiceDocumentID,
		PurchasePaymentReceiptDocumentID: r.PurchasePaymentReceiptDocumentID,
	}
}

// VehicleUpdate adjusts the mutable vehicle fields and document links.
func VehicleUpdate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		id, err := pathUUID(r, "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vehicleUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateDetails(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type sellingPriceRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// VehicleSellingPrice sets the sale price, which may conclude the sale.
func VehicleSellingPrice(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		id, err := pathUUID(r, "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sellingPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateSellingPrice(r.Context(), id, payload.SellingPrice, actorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type transitionRequest struct {
	TargetStatus string  `json:"target_status" validate:"required"`
	PartnerID    *string `json:"partner_id,omitempty"`
}

// VehicleTransition moves a vehicle along the lifecycle.
func VehicleTransition(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		id, err := pathUUID(r, "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload transitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, parseErr := enums.ParseVehicleStatus(strings.TrimSpace(payload.TargetStatus))
		if parseErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid target_status"))
			return
		}

		var partnerID *uuid.UUID
		if payload.PartnerID != nil {
			parsed, uuidErr := uuid.Parse(*payload.PartnerID)
			if uuidErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, uuidErr, "invalid partner_id"))
				return
			}
			partnerID = &parsed
		}

		dto, err := svc.TransitionStatus(r.Context(), id, target, partnerID, actorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type assignPartnerRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
}

// VehicleAssignPartner hands a ready vehicle to a distribution partner.
func VehicleAssignPartner(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		id, err := pathUUID(r, "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignPartnerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partnerID, uuidErr := uuid.Parse(payload.PartnerID)
		if uuidErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, uuidErr, "invalid partner_id"))
			return
		}

		dto, err := svc.AssignPartner(r.Context(), id, partnerID, actorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// VehicleTaxes previews the tax breakdown for the current prices.
func VehicleTaxes(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		id, err := pathUUID(r, "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.GetVehicleTaxes(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}
