package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmarinho/orderdesk/internal/http/auth"
	ingestHandler "github.com/dmarinho/orderdesk/internal/http/ingest"
	orderHandler "github.com/dmarinho/orderdesk/internal/http/order"
	reportHandler "github.com/dmarinho/orderdesk/internal/http/report"
)

func New(
	jwtSecret []byte,
	ordersV1 *orderHandler.Handler,
	reportsV1 *reportHandler.Handler,
	ingestV1 *ingestHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ordersV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/ingest", ingestV1.Routes)
	})

	return router
}
