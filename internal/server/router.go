package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"foodgraph/internal/auth"
	"foodgraph/internal/catalog"
	"foodgraph/internal/domain"
	ordercontroller "foodgraph/internal/order/controller"
)

func NewRouter(
	authCtrl *auth.Controller,
	catalogCtrl *catalog.Controller,
	ordersCtrl *ordercontroller.OrdersController,
	tokens TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "API is up"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authCtrl.HandleRegister)
		r.Post("/login", authCtrl.HandleLogin)
	})

	authenticate := Authenticator(tokens, logger)
	adminOnly := RequireRole(domain.RoleAdmin)

	r.Route("/api/foods", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", catalogCtrl.HandleListFoods)
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", catalogCtrl.HandleCreateFood)
			r.Put("/{id}", catalogCtrl.HandleUpdateFood)
			r.Delete("/{id}", catalogCtrl.HandleDeleteFood)
		})
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", ordersCtrl.HandleCreateOrder)
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", ordersCtrl.HandleListOrders)
			r.Put("/{id}", ordersCtrl.HandleUpdateStatus)
			r.Delete("/", ordersCtrl.HandleDeleteOrders)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Route not found"})
	})

	return r
}
