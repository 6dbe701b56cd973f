package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"desknotes/internal/handlers"
	"desknotes/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	NotesService    service.NotesService
	Attachments     handlers.AttachmentOpener
	DB              handlers.Pinger
	AttachmentsRoot string
	// AllowedOrigins are the browser origins permitted to call the API.
	AllowedOrigins []string
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS(deps.AllowedOrigins))

	notesHandler := handlers.NewNotesHandler(deps.NotesService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.AttachmentsRoot)
	attachmentHandler := handlers.NewAttachmentHandler(deps.Attachments)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Route("/notes", notesHandler.Routes)
	})

	// Resource scheme resolver for embedded images
	r.Method(http.MethodGet, "/attachments/{noteID}/{filename}", attachmentHandler)
	r.Method(http.MethodHead, "/attachments/{noteID}/{filename}", attachmentHandler)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
