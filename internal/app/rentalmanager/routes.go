// Package rentalmanager предоставляет маршруты для основного приложения.
package rentalmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/rental-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/rental-manager/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/rental-manager/internal/http/handlers/health"
	leasecreate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/lease/create"
	leaseexpiring "github.com/magabrotheeeer/rental-manager/internal/http/handlers/lease/expiring"
	leaselist "github.com/magabrotheeeer/rental-manager/internal/http/handlers/lease/list"
	leaseread "github.com/magabrotheeeer/rental-manager/internal/http/handlers/lease/read"
	leaseremove "github.com/magabrotheeeer/rental-manager/internal/http/handlers/lease/remove"
	leaseupdate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/lease/update"
	maintenancecreate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/maintenance/create"
	maintenancelist "github.com/magabrotheeeer/rental-manager/internal/http/handlers/maintenance/list"
	maintenanceread "github.com/magabrotheeeer/rental-manager/internal/http/handlers/maintenance/read"
	maintenanceremove "github.com/magabrotheeeer/rental-manager/internal/http/handlers/maintenance/remove"
	maintenanceupdate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/maintenance/update"
	paymentcreate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/create"
	paymentlist "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/list"
	paymentmonthlyincome "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/monthlyincome"
	paymentoverdue "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/overdue"
	paymentread "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/read"
	paymentremove "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/remove"
	paymentupcoming "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/upcoming"
	paymentupdate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/payment/update"
	propertycreate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/property/create"
	propertylist "github.com/magabrotheeeer/rental-manager/internal/http/handlers/property/list"
	propertyread "github.com/magabrotheeeer/rental-manager/internal/http/handlers/property/read"
	propertyremove "github.com/magabrotheeeer/rental-manager/internal/http/handlers/property/remove"
	propertystats "github.com/magabrotheeeer/rental-manager/internal/http/handlers/property/stats"
	propertyupdate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/property/update"
	tenantcreate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/tenant/create"
	tenantlist "github.com/magabrotheeeer/rental-manager/internal/http/handlers/tenant/list"
	tenantread "github.com/magabrotheeeer/rental-manager/internal/http/handlers/tenant/read"
	tenantremove "github.com/magabrotheeeer/rental-manager/internal/http/handlers/tenant/remove"
	tenantupdate "github.com/magabrotheeeer/rental-manager/internal/http/handlers/tenant/update"
	"github.com/magabrotheeeer/rental-manager/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/rental-manager/internal/services/auth"
	leaseservice "github.com/magabrotheeeer/rental-manager/internal/services/lease"
	maintenanceservice "github.com/magabrotheeeer/rental-manager/internal/services/maintenance"
	paymentservice "github.com/magabrotheeeer/rental-manager/internal/services/payment"
	propertyservice "github.com/magabrotheeeer/rental-manager/internal/services/property"
	tenantservice "github.com/magabrotheeeer/rental-manager/internal/services/tenant"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	propertyService *propertyservice.PropertyService,
	tenantService *tenantservice.TenantService,
	leaseService *leaseservice.LeaseService,
	paymentService *paymentservice.PaymentService,
	maintenanceService *maintenanceservice.MaintenanceService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/properties", propertycreate.New(logger, propertyService).ServeHTTP)
			r.Get("/properties/list", propertylist.New(logger, propertyService).ServeHTTP)
			r.Get("/properties/stats", propertystats.New(logger, propertyService).ServeHTTP)
			r.Get("/properties/{id}", propertyread.New(logger, propertyService).ServeHTTP)
			r.Put("/properties/{id}", propertyupdate.New(logger, propertyService).ServeHTTP)
			r.Delete("/properties/{id}", propertyremove.New(logger, propertyService).ServeHTTP)

			r.Post("/tenants", tenantcreate.New(logger, tenantService).ServeHTTP)
			r.Get("/tenants/list", tenantlist.New(logger, tenantService).ServeHTTP)
			r.Get("/tenants/{id}", tenantread.New(logger, tenantService).ServeHTTP)
			r.Put("/tenants/{id}", tenantupdate.New(logger, tenantService).ServeHTTP)
			r.Delete("/tenants/{id}", tenantremove.New(logger, tenantService).ServeHTTP)

			r.Post("/leases", leasecreate.New(logger, leaseService).ServeHTTP)
			r.Get("/leases/list", leaselist.New(logger, leaseService).ServeHTTP)
			r.Get("/leases/expiring_soon", leaseexpiring.New(logger, leaseService).ServeHTTP)
			r.Get("/leases/{id}", leaseread.New(logger, leaseService).ServeHTTP)
			r.Put("/leases/{id}", leaseupdate.New(logger, leaseService).ServeHTTP)
			r.Delete("/leases/{id}", leaseremove.New(logger, leaseService).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/overdue", paymentoverdue.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/upcoming", paymentupcoming.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/monthly_income", paymentmonthlyincome.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/{id}", paymentread.New(logger, paymentService).ServeHTTP)
			r.Put("/payments/{id}", paymentupdate.New(logger, paymentService).ServeHTTP)
			r.Delete("/payments/{id}", paymentremove.New(logger, paymentService).ServeHTTP)

			r.Post("/maintenance", maintenancecreate.New(logger, maintenanceService).ServeHTTP)
			r.Get("/maintenance/list", maintenancelist.New(logger, maintenanceService).ServeHTTP)
			r.Get("/maintenance/{id}", maintenanceread.New(logger, maintenanceService).ServeHTTP)
			r.Put("/maintenance/{id}", maintenanceupdate.New(logger, maintenanceService).ServeHTTP)
			r.Delete("/maintenance/{id}", maintenanceremove.New(logger, maintenanceService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
