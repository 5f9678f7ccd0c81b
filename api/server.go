/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions
  exposing a vacationdb.Database over REST.

ROUTER: chi, chosen for the same reasons as the rest of this codebase's
ancestry: lightweight, context-based, RESTful route patterns.

MIDDLEWARE STACK:
  1. Logger:    request logging
  2. Recoverer: panic recovery (500 instead of crash)
  3. RequestID: unique id per request for tracing
  4. CORS:      cross-origin requests for any frontend

ROUTE GROUPS:
  /api/persons/*      Person CRUD, extra-time sub-resources, queries
  /api/leave-types/*  Leave-type CRUD, rule sub-resources
  /api/status         I/O gate status
  /api/save, /load    Persistence triggers
  /api/clear          Database reset

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/vacationdbd/main.go: server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with every vacationdb route configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/persons", func(r chi.Router) {
			r.Get("/", h.ListPersons)
			r.Post("/", h.CreatePerson)
			r.Get("/{id}", h.GetPerson)
			r.Put("/{id}", h.EditPerson)
			r.Delete("/{id}", h.DeletePerson)

			r.Post("/{id}/extra-time", h.AddExtraTime)
			r.Delete("/{id}/extra-time/{eid}", h.RemoveExtraTime)

			r.Post("/{id}/leave-types/{did}/taken-days", h.AddPersonDay)
			r.Delete("/{id}/leave-types/{did}/taken-days", h.RemovePersonDay)

			r.Get("/{id}/leave-types/{did}/query", h.QueryPersonLeaveType)
			r.Get("/{id}/query", h.QueryPerson)
		})

		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", h.ListLeaveTypes)
			r.Post("/", h.CreateLeaveType)
			r.Get("/{id}", h.GetLeaveType)
			r.Put("/{id}", h.EditLeaveType)
			r.Delete("/{id}", h.DeleteLeaveType)

			r.Post("/{id}/rules", h.AddRule)
			r.Delete("/{id}/rules/{rid}", h.RemoveRule)
		})

		r.Get("/status", h.GetStatus)
		r.Post("/save", h.Save)
		r.Post("/load", h.Load)
		r.Post("/clear", h.Clear)
	})

	return r
}
