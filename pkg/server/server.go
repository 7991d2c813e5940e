package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

// DefaultMaxBodyBytes caps the size of POST /v1/render bodies.
const DefaultMaxBodyBytes = 1 << 20

// Server routes HTTP requests to a deck source and a document generator.
// It is safe for concurrent use.
type Server struct {
	source   deck.Source
	gen      pipeline.DocumentGenerator
	defaults layout.PageConfig
	logger   *log.Logger
	maxBody  int64
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Default: log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaults sets the page layout used when a request has no overrides.
// Default: layout.DefaultConfig().
func WithDefaults(cfg layout.PageConfig) Option {
	return func(s *Server) { s.defaults = cfg }
}

// WithMaxBodyBytes caps request bodies. Default: DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a server that loads decks from src and renders them with gen.
func New(src deck.Source, gen pipeline.DocumentGenerator, opts ...Option) *Server {
	s := &Server{
		source:   src,
		gen:      gen,
		defaults: layout.DefaultConfig(),
		logger:   log.Default(),
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(middleware.CleanPath)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:      "METHOD_NOT_ALLOWED",
			Message:   r.Method + " not allowed on " + r.URL.Path,
			RequestID: RequestIDFromContext(r.Context()),
		})
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/decks", s.handleListDecks)
		r.Get("/decks/{name}", s.handleGetDeck)
		r.Get("/decks/{name}/cards.pdf", s.handleDeckPDF)
		r.Post("/render", s.handleRender)
	})
	return r
}
