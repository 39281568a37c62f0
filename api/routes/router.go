package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lotmotors/resale-backend/api/controllers"
	"github.com/lotmotors/resale-backend/api/middleware"
	"github.com/lotmotors/resale-backend/internal/catalog"
	"github.com/lotmotors/resale-backend/internal/documents"
	"github.com/lotmotors/resale-backend/internal/partners"
	"github.com/lotmotors/resale-backend/internal/reports"
	"github.com/lotmotors/resale-backend/internal/services"
	"github.com/lotmotors/resale-backend/internal/vehicles"
	"github.com/lotmotors/resale-backend/pkg/config"
	"github.com/lotmotors/resale-backend/pkg/db"
	"github.com/lotmotors/resale-backend/pkg/enums"
	"github.com/lotmotors/resale-backend/pkg/logger"
	pkgredis "github.com/lotmotors/resale-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *pkgredis.Client

	// Idempotency overrides the store derived from Redis.
	Idempotency pkgredis.IdempotencyStore

	Metrics prometheus.Gatherer

	Vehicles  vehicles.Service
	Partners  partners.Service
	Services  services.Service
	Documents documents.Service
	Catalog   catalog.Service
	Reports   reports.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	idemStore := p.Idempotency
	var redisPinger controllers.Pinger
	if p.Redis != nil {
		if idemStore == nil {
			idemStore = p.Redis
		}
		redisPinger = p.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger))
	})

	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.VehicleList(p.Vehicles, logg))
			r.With(middleware.RequireWriter(logg)).Post("/", controllers.VehicleCreate(p.Vehicles, logg))

			r.Route("/{vehicleID}", func(r chi.Router) {
				r.Get("/", controllers.VehicleDetail(p.Vehicles, logg))
				r.Get("/taxes", controllers.VehicleTaxes(p.Vehicles, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireWriter(logg))
					r.Patch("/", controllers.VehicleUpdate(p.Vehicles, logg))
					r.Patch("/selling-price", controllers.VehicleSellingPrice(p.Vehicles, logg))
					r.Post("/transition", controllers.VehicleTransition(p.Vehicles, logg))
					r.Post("/partner", controllers.VehicleAssignPartner(p.Vehicles, logg))
				})

				r.Route("/services", func(r chi.Router) {
					r.Get("/", controllers.ServiceEntryList(p.Services, logg))
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireWriter(logg))
						r.Post("/", controllers.ServiceEntryAdd(p.Services, logg))
						r.Put("/{entryID}", controllers.ServiceEntryUpdate(p.Services, logg))
						r.Delete("/{entryID}", controllers.ServiceEntryDelete(p.Services, logg))
					})
				})

				r.Route("/documents", func(r chi.Router) {
					r.Get("/", controllers.DocumentList(p.Documents, logg))
					r.Get("/{documentID}", controllers.DocumentDetail(p.Documents, logg))
					r.Get("/{documentID}/download", controllers.DocumentDownload(p.Documents, logg))
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireWriter(logg))
						r.Post("/", controllers.DocumentUpload(p.Documents, cfg.Documents.MaxUploadBytes(), logg))
						r.Delete("/{documentID}", controllers.DocumentDelete(p.Documents, logg))
					})
				})
			})
		})

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", controllers.PartnerList(p.Partners, logg))
			r.Get("/{partnerID}", controllers.PartnerDetail(p.Partners, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter(logg))
				r.Post("/", controllers.PartnerCreate(p.Partners, logg))
				r.Put("/{partnerID}", controllers.PartnerUpdate(p.Partners, logg))
			})
			// Removing a partner is destructive; operators cannot do it.
			r.With(middleware.RequireRole(enums.RoleAdmin, logg)).Delete("/{partnerID}", controllers.PartnerDelete(p.Partners, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.BrandList(p.Catalog, logg))
			r.Get("/{brandID}/models", controllers.ModelList(p.Catalog, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sold", controllers.SoldVehiclesReport(p.Reports, logg))
			r.Get("/distributed", controllers.DistributedVehiclesReport(p.Reports, logg))
		})
	})

	return r
}
