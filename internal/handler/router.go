package handler

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	custommiddleware "github.com/shoaib7080/dirtoff-backend/internal/middleware"
	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

// allowCredentials разрешает cookie только для явно перечисленных источников:
// браузер отвергает credentialed-ответ с Access-Control-Allow-Origin: *.
func (h *Handler) allowCredentials() bool {
	return !slices.Contains(h.allowedOrigins, "*")
}

// SetupRouter настраивает HTTP-маршруты и middleware сервиса химчистки.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: h.allowCredentials(),
		MaxAge:           300,
	}))
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/health", h.Health)
	r.Post("/staff/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware.Middleware)

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", h.CreateEntry)
			r.Get("/", h.ListEntries)
			r.Get("/paginated", h.PageEntries)
			r.Get("/search", h.SearchEntries)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetEntry)
				r.Put("/", h.UpdateEntry)
				r.Patch("/", h.UpdateEntry)
				r.Delete("/", h.DeleteEntry)
				r.Patch("/visibility", h.SetVisibility)
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/recent-orders", h.RecentOrders)
			r.Get("/pending-deliveries", h.PendingDeliveries)
			r.Get("/entries", h.EntryStats)
			r.Post("/entries/refresh", h.RefreshEntryStats)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.CreateCustomer)
			r.Get("/", h.ListCustomers)
			r.Get("/{id}", h.GetCustomer)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.UpsertProduct)
			r.Get("/", h.ListProducts)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)
			r.Get("/{id}", h.GetStaff)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.RequireRole(string(model.StaffRoleAdmin)))
				r.Post("/", h.RegisterStaff)
				r.Delete("/{id}", h.DeleteStaff)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
