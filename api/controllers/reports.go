package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/lotmotors/resale-backend/api/responses"
	"github.com/lotmotors/resale-backend/internal/reports"
	pkgerrors "github.com/lotmotors/resale-backend/pkg/errors"
	"github.com/lotmotors/resale-backend/pkg/logger"
)

func parseQueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
		WithDetails(map[string]any{"field": key, "formats": []string{time.RFC3339, "2006-01-02"}})
}

func reportFiltersFromQuery(r *http.Request) (reports.ReportFilters, error) {
	from, err := parseQueryDate(r, "from")
	if err != nil {
		return reports.ReportFilters{}, err
	}
	to, err := parseQueryDate(r, "to")
	if err != nil {
		return reports.ReportFilters{}, err
	}
	partnerID, err := queryUUID(r, "partner_id")
	if err != nil {
		return reports.ReportFilters{}, err
	}
	return reports.ReportFilters{
		From:      from,
		To:        to,
		Brand:     strings.TrimSpace(r.URL.Query().Get("brand")),
		Model:     strings.TrimSpace(r.URL.Query().Get("model")),
		PartnerID: partnerID,
	}, nil
}

// SoldVehiclesReport settles every sold vehicle matching the filters.
func SoldVehiclesReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		filters, err := reportFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.SoldVehicles(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// DistributedVehiclesReport groups in-field vehicles by partner.
func DistributedVehiclesReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		filters, err := reportFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.DistributedVehicles(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
