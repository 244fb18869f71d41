package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/conversion/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(conversionHandler *handler.Handler, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(newCORS(allowedOrigins).Handler)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", conversionHandler.GetState)
		r.Get("/currencies", conversionHandler.GetCurrencies)
		r.Post("/targets", conversionHandler.AddTarget)
		r.Delete("/targets/{code}", conversionHandler.RemoveTarget)
		r.Post("/refresh", conversionHandler.Refresh)
		r.Get("/convert", conversionHandler.Convert)
	})
	return router
}

// newCORS lets browser front-ends on other origins read the API.
func newCORS(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
