package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cargodesk/cargodesk-backend/api/controllers"
	"github.com/cargodesk/cargodesk-backend/api/middleware"
	"github.com/cargodesk/cargodesk-backend/internal/archive"
	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/internal/auth"
	"github.com/cargodesk/cargodesk-backend/internal/counterparties"
	"github.com/cargodesk/cargodesk-backend/internal/inventory"
	"github.com/cargodesk/cargodesk-backend/internal/orders"
	"github.com/cargodesk/cargodesk-backend/internal/trucks"
	"github.com/cargodesk/cargodesk-backend/internal/users"
	"github.com/cargodesk/cargodesk-backend/internal/warehouses"
	pkgauth "github.com/cargodesk/cargodesk-backend/pkg/auth"
	"github.com/cargodesk/cargodesk-backend/pkg/auth/session"
	"github.com/cargodesk/cargodesk-backend/pkg/config"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/metrics"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	TokenIssuer *pkgauth.TokenIssuer
	Sessions    *session.Manager
	Metrics     *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	AuthService    auth.Service
	UserService    users.Service
	OrderService   orders.Service
	Counterparties counterparties.Service
	Warehouses     warehouses.Service
	Inventory      inventory.Service
	Trucks         trucks.Service
	Archive        archive.Service
	Audit          audit.Service

	ReadyChecks map[string]Pinger
}

// Pinger mirrors the controllers' readiness probe contract.
type Pinger = controllers.Pinger

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.ReadyChecks))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, deps.Logger))
		r.With(middleware.Auth(deps.TokenIssuer, deps.Sessions, deps.Logger)).
			Post("/logout", controllers.AuthLogout(deps.AuthService, deps.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.TokenIssuer, deps.Sessions, deps.Logger))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UserList(deps.UserService, deps.Logger))
			r.Post("/", controllers.UserCreate(deps.UserService, deps.Logger))
			r.Patch("/{userId}", controllers.UserUpdate(deps.UserService, deps.Logger))
			r.Delete("/{userId}", controllers.UserDelete(deps.UserService, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(deps.OrderService, deps.Logger))
			r.Post("/", controllers.OrderCreate(deps.OrderService, deps.Logger))
			r.Get("/{orderId}", controllers.OrderDetail(deps.OrderService, deps.Logger))
			r.Patch("/{orderId}", controllers.OrderUpdate(deps.OrderService, deps.Logger))
			r.Delete("/{orderId}", controllers.OrderDelete(deps.OrderService, deps.Logger))
			r.Post("/{orderId}/items", controllers.OrderItemCreate(deps.OrderService, deps.Logger))
		})
		r.Route("/order-items", func(r chi.Router) {
			r.Patch("/{itemId}", controllers.OrderItemUpdate(deps.OrderService, deps.Logger))
			r.Delete("/{itemId}", controllers.OrderItemDelete(deps.OrderService, deps.Logger))
		})

		r.Route("/counterparties", func(r chi.Router) {
			r.Get("/", controllers.CounterpartyList(deps.Counterparties, deps.Logger))
			r.Post("/", controllers.CounterpartyCreate(deps.Counterparties, deps.Logger))
			r.Get("/{counterpartyId}", controllers.CounterpartyDetail(deps.Counterparties, deps.Logger))
			r.Patch("/{counterpartyId}", controllers.CounterpartyUpdate(deps.Counterparties, deps.Logger))
			r.Delete("/{counterpartyId}", controllers.CounterpartyDelete(deps.Counterparties, deps.Logger))
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Get("/", controllers.WarehouseList(deps.Warehouses, deps.Logger))
			r.Post("/", controllers.WarehouseCreate(deps.Warehouses, deps.Logger))
			r.Get("/{warehouseId}", controllers.WarehouseDetail(deps.Warehouses, deps.Logger))
			r.Patch("/{warehouseId}", controllers.WarehouseUpdate(deps.Warehouses, deps.Logger))
			r.Delete("/{warehouseId}", controllers.WarehouseDelete(deps.Warehouses, deps.Logger))
			r.Get("/{warehouseId}/inventory", controllers.InventoryList(deps.Inventory, deps.Logger))
			r.Post("/{warehouseId}/inventory", controllers.InventoryItemCreate(deps.Inventory, deps.Logger))
		})
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/{itemId}", controllers.InventoryItemDetail(deps.Inventory, deps.Logger))
			r.Patch("/{itemId}", controllers.InventoryItemUpdate(deps.Inventory, deps.Logger))
			r.Delete("/{itemId}", controllers.InventoryItemDelete(deps.Inventory, deps.Logger))
		})

		r.Route("/trucks", func(r chi.Router) {
			r.Get("/", controllers.TruckList(deps.Trucks, deps.Logger))
			r.Post("/", controllers.TruckCreate(deps.Trucks, deps.Logger))
			r.Get("/{truckId}", controllers.TruckDetail(deps.Trucks, deps.Logger))
			r.Patch("/{truckId}", controllers.TruckUpdate(deps.Trucks, deps.Logger))
			r.Delete("/{truckId}", controllers.TruckDelete(deps.Trucks, deps.Logger))
		})

		r.Route("/archive", func(r chi.Router) {
			r.Get("/", controllers.ArchiveBrowse(deps.Archive, deps.Logger))
			r.Post("/folders", controllers.ArchiveFolderCreate(deps.Archive, deps.Logger))
			r.Patch("/folders/{folderId}", controllers.ArchiveFolderUpdate(deps.Archive, deps.Logger))
			r.Delete("/folders/{folderId}", controllers.ArchiveFolderDelete(deps.Archive, deps.Logger))
			r.Post("/folders/{folderId}/materials", controllers.ArchiveMaterialCreate(deps.Archive, deps.Logger))
			r.Patch("/materials/{materialId}", controllers.ArchiveMaterialUpdate(deps.Archive, deps.Logger))
			r.Delete("/materials/{materialId}", controllers.ArchiveMaterialDelete(deps.Archive, deps.Logger))
		})

		r.Get("/history", controllers.HistoryList(deps.Audit, deps.Logger))
	})

	return r
}
