package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lotmotors/resale-backend/api/responses"
	"github.com/lotmotors/resale-backend/internal/catalog"
	"github.com/lotmotors/resale-backend/pkg/db/models"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/logger"
)

type brandDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type vehicleModelDTO struct {
	ID      uuid.UUID `json:"id"`
	BrandID uuid.UUID `json:"brand_id"`
	Name    string    `json:"name"`
}

func brandDTOs(rows []models.Brand) []brandDTO {
	out := make([]brandDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, brandDTO{ID: row.ID, Name: row.Name})
	}
	return out
}

func modelDTOs(rows []models.VehicleModel) []vehicleModelDTO {
	out := make([]vehicleModelDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, vehicleModelDTO{ID: row.ID, BrandID: row.BrandID, Name: row.Name})
	}
	return out
}

// BrandList returns the known makes.
func BrandList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brandDTOs(rows))
	}
}

// ModelList returns the models registered under one brand.
func ModelList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brandID, err := pathUUID(r, "brandID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListModels(r.Context(), brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, modelDTOs(rows))
	}
}
