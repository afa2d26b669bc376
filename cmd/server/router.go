package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbenning/cardbox-api/internal/api"
	apiMiddleware "github.com/mbenning/cardbox-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	generateHandler := api.NewGenerateHandler(app.generator)
	collectionHandler := api.NewCollectionHandler(app.collectionService)
	paymentHandler := api.NewPaymentHandler(app.entitlementService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/generate", generateHandler.Generate)

			r.Post("/collections", collectionHandler.SaveCollection)
			r.Get("/collections", collectionHandler.ListCollections)
			r.Get("/collections/{name}/cards", collectionHandler.GetCollectionCards)

			r.Post("/payments/complete", paymentHandler.CompletePayment)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
