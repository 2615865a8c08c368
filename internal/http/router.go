package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gh-notes/internal/handlers"
	"gh-notes/internal/service"
)

// AuthRealm is the realm announced in the basic auth challenge.
const AuthRealm = "Application"

// Deps holds dependencies for the HTTP router.
type Deps struct {
	NoteService service.NoteService
	Views       *handlers.Views
	Static      http.Handler
	Index       handlers.IndexSizer
	Username    string
	Password    string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Assets are served without authentication.
	r.Handle("/static/*", deps.Static)

	indexHandler := handlers.NewIndexHandler(deps.NoteService, deps.Views)
	searchHandler := handlers.NewSearchHandler(deps.NoteService, deps.Views)
	healthHandler := handlers.NewHealthHandler(deps.NoteService, deps.Index)
	noteHandler := handlers.NewNoteHandler(deps.NoteService, deps.Views)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BasicAuth(AuthRealm, map[string]string{
			deps.Username: deps.Password,
		}))

		r.Method(http.MethodGet, "/", indexHandler)
		r.Method(http.MethodGet, "/search", searchHandler)
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodGet, "/api/health", healthHandler)
		r.Method(http.MethodGet, "/*", noteHandler)
	})

	return r
}
