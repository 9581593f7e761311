package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juthamas/contacts-server/internal/api/http/handler"
	"github.com/juthamas/contacts-server/internal/api/http/middleware"
	"github.com/juthamas/contacts-server/internal/logger"
)

// Router wires the contact endpoints and middleware into an HTTP mux.
type Router struct {
	contactService handler.ContactService
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(contactService handler.ContactService, logger *logger.Logger) *Router {
	return &Router{
		contactService: contactService,
		logger:         logger,
	}
}

// Register builds the mux with request logging and the contact routes.
func (r *Router) Register() http.Handler {
	contactHandler := handler.NewContact(r.contactService, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Route("/contacts", func(mux chi.Router) {
		mux.Get("/", contactHandler.List)
		mux.Post("/", contactHandler.Create)
		mux.Get("/{id}", contactHandler.Get)
		mux.Put("/{id}", contactHandler.Update)
		mux.Delete("/{id}", contactHandler.Delete)
	})
	return mux
}
